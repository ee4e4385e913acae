// Package validation holds input validation rules for account fields.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,50}$`)

var reservedUsernames = map[string]struct{}{
	"admin":         {},
	"api":           {},
	"auth":          {},
	"feature":       {},
	"post":          {},
	"posts":         {},
	"notifications": {},
	"search":        {},
	"settings":      {},
	"ws":            {},
	"metrics":       {},
	"health":        {},
	"login":         {},
	"register":      {},
}

// ValidateUsername validates username format and reserved names. Usernames are
// lowercase so profile URLs stay case-insensitive.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-50 characters and contain only lowercase letters, numbers, and underscores")
	}

	if strings.HasPrefix(username, "_") || strings.HasSuffix(username, "_") {
		return fmt.Errorf("username cannot start or end with an underscore")
	}

	if _, exists := reservedUsernames[username]; exists {
		return fmt.Errorf("username is reserved")
	}

	return nil
}

// ValidatePassword enforces the password policy. Length is measured in runes
// so non-ASCII passwords are not penalized.
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if length > 128 {
		return fmt.Errorf("password must be at most 128 characters")
	}
	return nil
}
