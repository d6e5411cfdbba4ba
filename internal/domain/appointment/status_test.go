package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("pending"))
	assert.True(t, IsValidStatus("confirmed"))
	assert.True(t, IsValidStatus("completed"))
	assert.True(t, IsValidStatus("cancelled"))

	assert.False(t, IsValidStatus("scheduled"))
	assert.False(t, IsValidStatus("Pending"))
	assert.False(t, IsValidStatus(""))
}

func TestHolding(t *testing.T) {
	// só pending/confirmed seguram o horário na agenda
	assert.True(t, Holding("pending"))
	assert.True(t, Holding("confirmed"))

	assert.False(t, Holding("completed"))
	assert.False(t, Holding("cancelled"))
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"pending", "confirmed"}, ActiveStatuses)
}
