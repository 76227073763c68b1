package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carnaval/internal/domains/event/model"
)

func TestIsValidCategory(t *testing.T) {
	for _, category := range model.Categories() {
		assert.True(t, model.IsValidCategory(category), category)
	}

	assert.False(t, model.IsValidCategory("samba"))
	assert.False(t, model.IsValidCategory(""))
}
