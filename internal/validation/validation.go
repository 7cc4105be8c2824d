// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	// Prevent unreasonable inputs
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	return nil
}

// ValidateFullName checks if a display name meets requirements
func ValidateFullName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return fmt.Errorf("full name must be at least 2 characters long")
	}
	if len(trimmed) > 60 {
		return fmt.Errorf("full name must not exceed 60 characters")
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '\'' && r != '-' && r != '.' {
			return fmt.Errorf("full name can only contain letters, spaces, apostrophes, hyphens, and periods")
		}
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidateLanguage checks an onboarding language selection.
// Languages are free-form but bounded; empty means "not provided".
func ValidateLanguage(lang string) error {
	if lang == "" {
		return fmt.Errorf("language is required")
	}
	if len(lang) > 40 {
		return fmt.Errorf("language must not exceed 40 characters")
	}
	for _, r := range lang {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' {
			return fmt.Errorf("language can only contain letters, spaces, and hyphens")
		}
	}
	return nil
}
