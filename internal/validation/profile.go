package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/iudanet/coffeecloud/internal/models"
)

// PhonePattern допускает цифры, пробелы, дефисы и ведущий "+"
var PhonePattern = regexp.MustCompile(`^\+?[0-9 \-]{3,20}$`)

// ValidatePhone проверяет формат телефона. Пустая строка допустима.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !PhonePattern.MatchString(phone) {
		return fmt.Errorf("phone must contain 3-20 digits, spaces or dashes")
	}
	return nil
}

// ValidateEmail проверяет email. Пустая строка допустима.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if len(email) > 255 {
		return fmt.Errorf("email must not exceed 255 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("email is not valid")
	}
	return nil
}

// ParseBirthday parses a YYYY-MM-DD date that is not in the future.
// An empty string yields nil.
func ParseBirthday(s string, now time.Time) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(models.BirthdayLayout, s)
	if err != nil {
		return nil, fmt.Errorf("birthday must be in YYYY-MM-DD format")
	}
	if t.After(now) {
		return nil, fmt.Errorf("birthday cannot be in the future")
	}
	return &t, nil
}
