package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Username: letters, digits, dots, underscores, hyphens; 3..30 chars.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{3,30}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// IsValidPassword requires:
// - at least 8 characters
// - at least one letter
// - at least one number
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// NormalizeISBN strips hyphens and spaces. All catalog lookups and the
// unique index on books.isbn use the normalized form.
func NormalizeISBN(isbn string) string {
	s := strings.ReplaceAll(isbn, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimSpace(s)
}

// IsPlausibleISBN accepts a normalized 10 or 13 character ISBN (digits, with
// X allowed as the ISBN-10 check character).
func IsPlausibleISBN(normalized string) bool {
	if len(normalized) != 10 && len(normalized) != 13 {
		return false
	}
	for i, r := range normalized {
		if r >= '0' && r <= '9' {
			continue
		}
		if (r == 'X' || r == 'x') && len(normalized) == 10 && i == 9 {
			continue
		}
		return false
	}
	return true
}
