// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

// PasswordRule is a single pure predicate over a candidate password.
type PasswordRule func(password string) error

// PasswordRules is the default rule set applied at registration.
var PasswordRules = []PasswordRule{
	PasswordLength,
	PasswordDigit,
	PasswordUppercase,
	PasswordLowercase,
	PasswordSymbol,
}

// ValidatePassword runs the default rule set and returns the first violation.
func ValidatePassword(password string) error {
	for _, rule := range PasswordRules {
		if err := rule(password); err != nil {
			return err
		}
	}
	return nil
}

// PasswordLength checks minimum and maximum password length.
func PasswordLength(password string) error {
	if len(password) < 5 {
		return fmt.Errorf("password must be at least 5 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// PasswordDigit requires at least one digit.
func PasswordDigit(password string) error {
	for _, r := range password {
		if unicode.IsDigit(r) {
			return nil
		}
	}
	return fmt.Errorf("password must contain at least one digit")
}

// PasswordUppercase requires at least one uppercase letter.
func PasswordUppercase(password string) error {
	for _, r := range password {
		if unicode.IsUpper(r) {
			return nil
		}
	}
	return fmt.Errorf("password must contain at least one uppercase letter")
}

// PasswordLowercase requires at least one lowercase letter.
func PasswordLowercase(password string) error {
	for _, r := range password {
		if unicode.IsLower(r) {
			return nil
		}
	}
	return fmt.Errorf("password must contain at least one lowercase letter")
}

var passwordSymbolRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)

// PasswordSymbol requires at least one special character.
func PasswordSymbol(password string) error {
	if !passwordSymbolRegex.MatchString(password) {
		return fmt.Errorf("password must contain at least one special character (!@#$%%^&*)")
	}
	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 4 {
		return fmt.Errorf("username must be at least 4 characters long")
	}

	if len(username) > 20 {
		return fmt.Errorf("username must not exceed 20 characters")
	}

	// Only allow alphanumeric and underscores
	if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	// Cannot start or end with underscore/hyphen
	if username[0] == '_' || username[0] == '-' || username[len(username)-1] == '_' || username[len(username)-1] == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	// Simple email validation - regex approach
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}
