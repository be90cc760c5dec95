package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9780132350884", NormalizeISBN("978-0-13-235088-4"))
	assert.Equal(t, "9780132350884", NormalizeISBN(" 978 0 13 235088 4 "))
	assert.Equal(t, "9780132350884", NormalizeISBN("9780132350884"))
	assert.Equal(t, "", NormalizeISBN("- - -"))
}

func TestIsPlausibleISBN(t *testing.T) {
	assert.True(t, IsPlausibleISBN("9780132350884"))
	assert.True(t, IsPlausibleISBN("0132350882"))
	// ISBN-10 check digit may be X
	assert.True(t, IsPlausibleISBN("097522980X"))
	assert.False(t, IsPlausibleISBN(""))
	assert.False(t, IsPlausibleISBN("12345"))
	assert.False(t, IsPlausibleISBN("97801323508841"))
	assert.False(t, IsPlausibleISBN("97801323508AB"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("etudiant@univ-alger.dz"))
	assert.True(t, IsValidEmail("a.b+c@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("user@"))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("amine_23"))
	assert.True(t, IsValidUsername("sara.b"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("nom avec espaces"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("motdepasse1"))
	assert.False(t, IsValidPassword("court1"))
	assert.False(t, IsValidPassword("quedeslettres"))
	assert.False(t, IsValidPassword("12345678"))
}
