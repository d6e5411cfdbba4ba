package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("+5511999887766"))
	assert.True(t, IsPhoneValid("11999887766"))
	assert.True(t, IsPhoneValid("+15551234567"))

	assert.False(t, IsPhoneValid(""))
	assert.False(t, IsPhoneValid("+1 (555) 123-4567")) // só dígitos
	assert.False(t, IsPhoneValid("1234567")) // curto demais
	assert.False(t, IsPhoneValid("abcdefghij"))
	assert.False(t, IsPhoneValid("+55119998877665544")) // longo demais
}
