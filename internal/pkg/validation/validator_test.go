package validation

import (
	"testing"

	"rfp-console/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resetForm struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Confirm  string   `json:"confirm_password" validate:"eqfield=Password"`
	Users    []string `json:"users" validate:"min=1"`
	Role     string   `json:"role" validate:"oneof=admin reviewer"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Struct(resetForm{
			Email:    "a@b.com",
			Password: "password123",
			Confirm:  "password123",
			Users:    []string{"rev1"},
			Role:     "admin",
		})
		assert.NoError(t, err)
	})

	t.Run("field errors keyed by json name", func(t *testing.T) {
		err := Struct(resetForm{Email: "nope", Password: "short", Confirm: "x", Role: "owner"})
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindValidation))

		fields := apperror.FieldsOf(err)
		assert.Equal(t, "email must be a valid email", fields["email"])
		assert.Equal(t, "password must be at least 8 characters", fields["password"])
		assert.Equal(t, "confirm password does not match", fields["confirm_password"])
		assert.Equal(t, "users must contain at least 1 item(s)", fields["users"])
		assert.Equal(t, "role must be one of: admin reviewer", fields["role"])
	})
}
