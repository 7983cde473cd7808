package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pinForm struct {
	Pinned string `binding:"required,boolstr"`
}

func TestCustomValidator_BoolStr(t *testing.T) {
	v := NewCustomValidator()

	assert.NoError(t, v.ValidateStruct(&pinForm{Pinned: "true"}))
	assert.NoError(t, v.ValidateStruct(&pinForm{Pinned: "false"}))
	assert.Error(t, v.ValidateStruct(&pinForm{Pinned: "maybe"}))
	assert.Error(t, v.ValidateStruct(&pinForm{}))

	assert.NoError(t, v.ValidateStruct([]string{"not a struct"}))
}
