package generator

import (
	"testing"

	"github.com/gamassss/brevly/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestGenerateShortCode_BasicProperties(t *testing.T) {
	code, err := GenerateShortCode()

	assert.NoError(t, err)
	assert.Len(t, code, 7, "Short code should be 7 characters long")
	assert.True(t, validator.IsAlias(code), "Short code should be a valid alias")
}

func TestGenerateShortCode_Uniqueness(t *testing.T) {
	codes := make(map[string]bool, 1000)

	for i := 0; i < 1000; i++ {
		code, err := GenerateShortCode()
		assert.NoError(t, err)

		assert.False(t, codes[code], "Duplicate code generated: %s", code)
		codes[code] = true
	}

	assert.Equal(t, 1000, len(codes))
}

func TestGenerateShortCodeN(t *testing.T) {
	code, err := GenerateShortCodeN(12)

	assert.NoError(t, err)
	assert.Len(t, code, 12)
	assert.Regexp(t, "^[a-zA-Z0-9]+$", code)
}
