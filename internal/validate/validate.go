// Package validate holds structural checks for checkout form input.
// Failures here are resolved client-side and never reach the order
// store.
package validate

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

func String(field, val string, minLen, maxLen int) error {
	length := utf8.RuneCountInString(val)
	if length < minLen || length > maxLen {
		return fmt.Errorf("%s must be between %d and %d characters", field, minLen, maxLen)
	}
	return nil
}

func Email(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// Phone accepts separators and a leading country code but requires at
// least ten digits overall.
func Phone(phone string) error {
	digits := len(digitRegex.FindAllString(phone, -1))
	if digits < 10 || digits > 15 {
		return fmt.Errorf("phone must contain 10 to 15 digits")
	}
	return nil
}

func PostalCode(code string) error {
	if utf8.RuneCountInString(code) < 4 {
		return fmt.Errorf("postal code must be at least 4 characters")
	}
	return nil
}
