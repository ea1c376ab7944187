package validation

import (
	"errors"
	"strings"
)

// ValidateBio validates the free-text profile bio
func ValidateBio(bio string) error {
	trimmed := strings.TrimSpace(bio)

	if trimmed == "" {
		return errors.New("bio is required")
	}

	if len(trimmed) > 2000 {
		return errors.New("bio is too long (max 2000 characters)")
	}

	return nil
}
