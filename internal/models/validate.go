package models

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const passwordSpecials = "!@#$%^&*"

// NewValidator returns a validator with the custom "password" rule
// registered: 8-16 characters with at least one uppercase letter and one
// special character.
func NewValidator() *validator.Validate {
	v := validator.New()
	// The rule is registered at construction with a fixed name, so
	// registration cannot fail.
	_ = v.RegisterValidation("password", validPassword)
	return v
}

func validPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 || len(pw) > 16 {
		return false
	}
	var upper, special bool
	for _, r := range pw {
		if unicode.IsUpper(r) {
			upper = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			special = true
		}
	}
	return upper && special
}
