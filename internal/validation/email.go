package validation

import (
	"errors"
	"net/mail"
)

// ValidateEmail checks that the input is a bare, RFC 5322 parseable address.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	// RFC 5321 caps the full address at 254 characters.
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("invalid email address format")
	}

	// ParseAddress also accepts display-name forms like "Sam <sam@x.com>",
	// which must not become a storage key.
	if addr.Address != email {
		return errors.New("invalid email address format")
	}

	return nil
}
