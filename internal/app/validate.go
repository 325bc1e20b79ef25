package app

import (
	"regexp"
	"strings"

	"hotel_ops/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.Invalid(field, "is required")
	}
	return nil
}

// optionalEmail accepts an empty value.
func optionalEmail(field, v string) error {
	if v != "" && !emailRe.MatchString(v) {
		return domain.Invalid(field, "is not a valid email address")
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// shortCode returns prefix plus n upper-case hex characters of a fresh UUID.
func shortCode(prefix string, n int) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(newUUID(), "-", "")[:n])
}
