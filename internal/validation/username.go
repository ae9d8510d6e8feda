package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ограничения учетной записи
const (
	MinUsernameLen = 3
	MaxUsernameLen = 32
	MinPasswordLen = 8
	MaxPasswordLen = 128
)

// UsernamePattern допускает ASCII буквы, цифры и "_"
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// reservedUsernames заняты служебными учетными записями кофейни
var reservedUsernames = map[string]struct{}{
	"admin":  {},
	"system": {},
	"kiosk":  {},
}

// checkLength проверяет длину n поля field
func checkLength(field string, n, minLen, maxLen int) error {
	switch {
	case n == 0:
		return fmt.Errorf("%s cannot be empty", field)
	case n < minLen:
		return fmt.Errorf("%s must be at least %d characters long", field, minLen)
	case n > maxLen:
		return fmt.Errorf("%s must not exceed %d characters", field, maxLen)
	}
	return nil
}

// ValidateUsername проверяет username при регистрации
func ValidateUsername(username string) error {
	if err := checkLength("username", len(username), MinUsernameLen, MaxUsernameLen); err != nil {
		return err
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	if _, reserved := reservedUsernames[strings.ToLower(username)]; reserved {
		return fmt.Errorf("username %q is reserved", username)
	}

	return nil
}

// ValidatePassword проверяет пароль учетной записи.
// Длина считается в символах, а не в байтах.
func ValidatePassword(password string) error {
	return checkLength("password", utf8.RuneCountInString(password), MinPasswordLen, MaxPasswordLen)
}
