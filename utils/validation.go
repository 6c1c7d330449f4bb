package utils

import (
	"fmt"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/cppla/linkbook/models"
)

// RegisterValidators installs the custom binding rules on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("interest_field", func(fl validator.FieldLevel) bool {
		return models.Field(fl.Field().String()).Valid()
	})
}

// WithinLength reports whether s fits a column of n characters. Sanitized
// text can outgrow its input, so callers check it again after sanitizing.
func WithinLength(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}
