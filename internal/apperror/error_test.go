package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{
			name:     "detail wins over everything",
			err:      FromResponse(http.StatusNotFound, []byte(`{"detail":"X","message":"other"}`)),
			fallback: "Failed",
			want:     "X",
		},
		{
			name:     "plain message",
			err:      FromResponse(http.StatusConflict, []byte(`{"message":"Already taken"}`)),
			fallback: "Failed",
			want:     "Already taken",
		},
		{
			name:     "double wrapped duplicate",
			err:      FromResponse(StatusDuplicate, []byte(`{"message":{"message":"Y"}}`)),
			fallback: "Failed",
			want:     "Y",
		},
		{
			name:     "detail list from validation",
			err:      FromResponse(http.StatusUnprocessableEntity, []byte(`{"detail":[{"loc":["body","email"],"msg":"field required"}]}`)),
			fallback: "Failed",
			want:     "field required",
		},
		{
			name:     "400 without body",
			err:      FromResponse(http.StatusBadRequest, nil),
			fallback: "Failed",
			want:     MsgInvalidRequest,
		},
		{
			name:     "401 without body",
			err:      FromResponse(http.StatusUnauthorized, []byte("not json")),
			fallback: "Failed",
			want:     MsgInvalidCredentials,
		},
		{
			name:     "500 without body",
			err:      FromResponse(http.StatusInternalServerError, []byte(`{}`)),
			fallback: "Failed",
			want:     MsgServerError,
		},
		{
			name:     "other status uses fallback",
			err:      FromResponse(http.StatusForbidden, nil),
			fallback: "Could not load documents",
			want:     "Could not load documents",
		},
		{
			name:     "network error uses fallback",
			err:      Network(errors.New("dial tcp: refused")),
			fallback: "Could not reach server",
			want:     "Could not reach server",
		},
		{
			name:     "wrapped app error still extracted",
			err:      fmt.Errorf("delete question: %w", FromResponse(http.StatusNotFound, []byte(`{"detail":"Question not found"}`))),
			fallback: "Failed",
			want:     "Question not found",
		},
		{
			name:     "foreign error uses fallback",
			err:      errors.New("boom"),
			fallback: "Failed",
			want:     "Failed",
		},
		{
			name:     "validation returns first field message",
			err:      Validation(map[string]string{"password": "password is required", "email": "email must be a valid email"}),
			fallback: "Failed",
			want:     "email must be a valid email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err, tt.fallback))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{StatusDuplicate, KindDuplicate},
		{http.StatusBadRequest, KindBadRequest},
		{http.StatusUnauthorized, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusBadGateway, KindServer},
		{http.StatusForbidden, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(FromResponse(tt.status, nil)))
		})
	}
}

func TestFieldsOf(t *testing.T) {
	err := fmt.Errorf("login: %w", Validation(map[string]string{"email": "email is required"}))

	assert.True(t, Is(err, KindValidation))
	assert.Equal(t, map[string]string{"email": "email is required"}, FieldsOf(err))
	assert.Nil(t, FieldsOf(FromResponse(http.StatusNotFound, nil)))
	assert.False(t, Is(nil, KindValidation))
}
