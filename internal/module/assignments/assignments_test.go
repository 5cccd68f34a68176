package assignments

import (
	"testing"

	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/testutil"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMyAssignments(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("GET", "/assignments", testutil.OK(`[
		{"file_id": 1, "filename": "a.pdf", "total_questions": 4, "submitted_questions": 1},
		{"id": "2", "file_name": "b.pdf", "question_count": 2, "submitted_count": 2},
		{"file_id": 3, "filename": "c.pdf", "total_questions": 5, "is_completed": true}
	]`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchMyAssignments{})
	c.Drain()

	s := m.State()
	require.Len(t, s.Summaries, 3)
	pending := Pending(s)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].FileID)

	tests := []struct {
		fileID int
		want   int
	}{
		{1, 25},
		{2, 100},
		{3, 100},
		{9, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Progress(s, tt.fileID), "file %d", tt.fileID)
	}
}

func TestFetchAssignmentDetail(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("GET", "/assignments/4", testutil.OK(`{"data": [{"id": 10, "question": "One?"}, {"id": 11, "question": "Two?", "status": "process"}]}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchAssignmentDetail{FileID: 4})
	c.Drain()

	qs := Questions(m.State(), 4)
	require.Len(t, qs, 2)
	assert.Equal(t, 4, qs[0].RfpID)
	assert.Equal(t, entity.QuestionProcess, qs[1].Status)
}

func TestSubmitAssignment(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/assignments", testutil.OK(`[{"file_id": 1, "total_questions": 4, "submitted_questions": 3}]`)).
		On("POST", "/assignments/1/submit", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchMyAssignments{})
	c.Drain()
	c.Dispatch(intent.SubmitAssignment{FileID: 1})
	c.Drain()

	s := m.State()
	assert.Empty(t, Pending(s))
	assert.Equal(t, 100, Progress(s, 1))
	assert.False(t, s.Submitting.Has("1"))
	assert.Equal(t, []workflow.Kind{intent.KindFetchMyAssignments}, h.Dispatched.Kinds())
	assert.Equal(t, []string{"success:Assignment submitted"}, h.Messages())
}

func TestSubmitAssignmentFailure(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("POST", "/assignments/1/submit", testutil.Status(409, `{"detail": "Unanswered questions remain"}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.SubmitAssignment{FileID: 1})
	c.Drain()

	assert.Equal(t, "Unanswered questions remain", m.State().ActionError)
	assert.Empty(t, h.Dispatched.Kinds())
}
