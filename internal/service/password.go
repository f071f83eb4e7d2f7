package service

import (
	"fmt"
	"unicode"
)

// Password policy violation codes.
const (
	PasswordTooShort    = "password_too_short"
	PasswordNoDigit     = "password_no_digit"
	PasswordNoUppercase = "password_no_uppercase"
)

// PolicyError is a single violated password rule.
type PolicyError struct {
	Code    string
	Message string
}

func (e PolicyError) Error() string { return e.Message }

// Policy is the set of rules a new password must satisfy.
type Policy struct {
	MinLength        int
	RequireDigit     bool
	RequireUppercase bool
}

// DefaultPolicy matches the signup form's advertised rules.
var DefaultPolicy = Policy{MinLength: 8, RequireDigit: true, RequireUppercase: true}

// Validate checks the password against every rule and returns all
// violations, not just the first.
func (p Policy) Validate(password string) []PolicyError {
	var errs []PolicyError

	if len([]rune(password)) < p.MinLength {
		errs = append(errs, PolicyError{
			Code:    PasswordTooShort,
			Message: fmt.Sprintf("The password must be at least %d characters long.", p.MinLength),
		})
	}

	if p.RequireDigit && !containsClass(password, unicode.IsDigit) {
		errs = append(errs, PolicyError{
			Code:    PasswordNoDigit,
			Message: "The password must contain at least one digit.",
		})
	}

	if p.RequireUppercase && !containsClass(password, unicode.IsUpper) {
		errs = append(errs, PolicyError{
			Code:    PasswordNoUppercase,
			Message: "The password must contain at least one uppercase letter.",
		})
	}

	return errs
}

// Describe returns the help text shown next to the password field.
func (p Policy) Describe() []string {
	help := []string{fmt.Sprintf("Your password must be at least %d characters long.", p.MinLength)}
	if p.RequireDigit {
		help = append(help, "Your password must contain at least one digit.")
	}
	if p.RequireUppercase {
		help = append(help, "Your password must contain at least one uppercase letter.")
	}
	return help
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}
	return false
}
