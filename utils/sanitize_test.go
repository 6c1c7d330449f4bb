package utils

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/linkbook/models"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "<b>bold</b>", Sanitize(`<script>alert(1)</script><b>bold</b>`))
	assert.Equal(t, "Bob", SanitizePlain("<b>Bob</b>"))
	assert.Equal(t, "plain words", SanitizePlain("plain words"))
}

func TestInterestFieldValidator(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type profile struct {
		Interests []models.Field `binding:"dive,interest_field"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(profile{
		Interests: []models.Field{models.FieldDesigner, models.FieldEtc},
	}))
	assert.NoError(t, binding.Validator.ValidateStruct(profile{}))
	assert.Error(t, binding.Validator.ValidateStruct(profile{
		Interests: []models.Field{models.FieldDesigner, "wizard"},
	}))
}

func TestWithinLengthAfterSanitizing(t *testing.T) {
	assert.True(t, WithinLength(strings.Repeat("é", 64), 64), "counts characters, not bytes")
	assert.False(t, WithinLength(strings.Repeat("é", 65), 64))

	escaped := SanitizePlain(strings.Repeat("&", 13))
	assert.Equal(t, strings.Repeat("&amp;", 13), escaped)
	assert.False(t, WithinLength(escaped, 64))
}
