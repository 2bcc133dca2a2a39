package upc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Run("accepts exactly 12 ASCII digits", func(t *testing.T) {
		ok, reason := Validate("012345678905")
		assert.True(t, ok)
		assert.Empty(t, reason)
	})

	t.Run("rejects short input with a length reason", func(t *testing.T) {
		ok, reason := Validate("01234567890")
		assert.False(t, ok)
		assert.Contains(t, reason, "12 digits")
		assert.Contains(t, reason, "11 characters")
	})

	t.Run("rejects long input with a length reason", func(t *testing.T) {
		ok, reason := Validate("0123456789012")
		assert.False(t, ok)
		assert.Contains(t, reason, "12 digits")
	})

	t.Run("rejects non-numeric content", func(t *testing.T) {
		ok, reason := Validate("01234567890A")
		assert.False(t, ok)
		assert.Contains(t, reason, "non-numeric")
	})

	t.Run("length is checked before content", func(t *testing.T) {
		ok, reason := Validate("bad")
		assert.False(t, ok)
		assert.Contains(t, reason, "12 digits")
		assert.NotContains(t, reason, "non-numeric")
	})

	t.Run("rejects empty string", func(t *testing.T) {
		ok, reason := Validate("")
		assert.False(t, ok)
		assert.Contains(t, reason, "0 characters")
	})

	t.Run("rejects non-ASCII digits", func(t *testing.T) {
		// Arabic-Indic digits are not ASCII digits even when the byte
		// length happens to line up.
		ok, _ := Validate("٠١٢٣٤٥")
		assert.False(t, ok)
	})
}

func TestCheckDigit(t *testing.T) {
	t.Run("computes known check digits", func(t *testing.T) {
		for _, code := range []string{"012345678905", "036000291452", "123456789012"} {
			check, err := CheckDigit(code[:11])
			assert.NoError(t, err)
			assert.Equal(t, code[11], check, code)
		}
	})

	t.Run("rejects short input", func(t *testing.T) {
		_, err := CheckDigit("01234")
		assert.Error(t, err)
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := CheckDigit("0123456789X")
		assert.Error(t, err)
	})
}
