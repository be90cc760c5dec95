package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	assert.Equal(t, "", Check("Manuel d'algèbre en très bon état"))
	assert.Equal(t, "arnaque", Check("ce n'est pas une ARNAQUE promis"))
	assert.Equal(t, "spam", Check("anti-SPAM"))
	assert.Equal(t, "", Check(""))
}

func TestIsSafe(t *testing.T) {
	assert.True(t, IsSafe("Livre de chimie organique"))
	assert.False(t, IsSafe("vente interdite... interdit"))
}
