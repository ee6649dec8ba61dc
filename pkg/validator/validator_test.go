package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupInput struct {
	FirstName string `json:"firstName" validate:"required,notblank"`
	Username  string `json:"username" validate:"required,notblank"`
	Nickname  string `json:"nickname"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		errs := Struct(signupInput{FirstName: "Ada", Username: "ada"})
		assert.False(t, errs.HasErrors())
	})

	t.Run("missing and blank use json names", func(t *testing.T) {
		errs := Struct(signupInput{FirstName: "   "})

		assert.True(t, errs.HasErrors())
		assert.Equal(t, ValidationErrors{"firstName": "required", "username": "required"}, errs)
	})
}

func TestInstance_RegistersNotBlank(t *testing.T) {
	assert.NotPanics(t, func() { instance() })
	assert.Error(t, instance().Var("   ", "notblank"))
	assert.NoError(t, instance().Var("x", "notblank"))
}
