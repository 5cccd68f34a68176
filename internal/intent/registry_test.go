package intent

import (
	"testing"

	"rfp-console/internal/apperror"
	"rfp-console/internal/pkg/validation"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	in, err := Decode(KindAssignReviewer, []byte(`{"q_idx": 0, "users": [{"user_id": 9, "username": "rev1"}], "question_id": 5, "file_id": 7}`))
	require.NoError(t, err)

	assign, ok := in.(AssignReviewer)
	require.True(t, ok)
	assert.Equal(t, NewAssignReviewer(0, assign.Users, 5, 7), assign)
	assert.Equal(t, "rev1", assign.Users[0].Username)

	empty, err := Decode(KindFetchDocuments, nil)
	require.NoError(t, err)
	assert.Equal(t, FetchDocuments{}, empty)

	_, err = Decode("nope/nothing", nil)
	assert.Error(t, err)

	_, err = Decode(KindLogin, []byte(`{"email": 5}`))
	assert.Error(t, err)
}

func TestKindsAreUniqueAndComplete(t *testing.T) {
	kinds := Kinds()
	seen := map[workflow.Kind]bool{}
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
	assert.Len(t, kinds, 58)
	assert.Len(t, Registry(), len(kinds))
}

func TestIntentValidation(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		fields []string
	}{
		{"valid login", NewLogin("a@b.com", "password123", false), nil},
		{"bad login", NewLogin("nope", "short", false), []string{"email", "password"}},
		{"reset mismatch", NewResetPassword("tok", "password123", "password124"), []string{"confirm_password"}},
		{"assign without users", NewAssignReviewer(0, nil, 5, 7), []string{"users"}},
		{"upload bad category", NewUploadDocument("P", "misc", "a.pdf", []byte("x")), []string{"category"}},
		{"question without id", NewDeleteQuestion(0, 7), []string{"question_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(tt.in)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.True(t, apperror.Is(err, apperror.KindValidation))
			fields := apperror.FieldsOf(err)
			for _, f := range tt.fields {
				assert.Contains(t, fields, f)
			}
		})
	}
}
