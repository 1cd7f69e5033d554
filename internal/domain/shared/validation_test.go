package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Email string `json:"contactEmail" validate:"required,email"`
	Phone string `json:"contactPhone" validate:"required,phone"`
	Name  string `json:"name" validate:"required,max=5"`
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0791234567", true},
		{"+962 (79) 123-4567", true},
		{"079123456", false},
		{"07912345ab", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhone(tt.phone))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, ValidateStruct(contactForm{Email: "a@b.co", Phone: "0791234567", Name: "shop"}))
	})

	t.Run("uses json names", func(t *testing.T) {
		err := ValidateStruct(contactForm{Email: "nope", Name: "too long"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Invalid email format", verr.Fields["contactEmail"])
		assert.Equal(t, "This field is required", verr.Fields["contactPhone"])
		assert.Equal(t, "Must be at most 5 characters", verr.Fields["name"])
	})
}
