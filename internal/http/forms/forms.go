// Package forms holds one request DTO and validation function per
// operation. Validation returns field-level errors so templates can
// render messages next to the offending input.
package forms

import (
	"net/mail"
	"regexp"
	"strings"

	"task_manager/internal/service"
)

var usernameChars = regexp.MustCompile(`^[A-Za-z0-9@.+\-_]+$`)

// SignupForm carries the raw signup submission.
type SignupForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks everything that does not need the database. Uniqueness
// and password-confirmation checks live in the account service.
func (f *SignupForm) Validate() service.FieldErrors {
	errs := service.FieldErrors{}

	if f.Username == "" {
		errs.Add("username", "This field is required.")
	} else {
		if len(f.Username) > 150 {
			errs.Add("username", "Username must be 150 characters or fewer.")
		}
		if !usernameChars.MatchString(f.Username) {
			errs.Add("username", "Username can only contain letters, digits, and @/./+/-/_ characters.")
		}
	}

	if f.Email == "" {
		errs.Add("email", "This field is required.")
	} else if len(f.Email) > 254 {
		errs.Add("email", "Enter a valid email address.")
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs.Add("email", "Enter a valid email address.")
	}

	if f.Password == "" {
		errs.Add("password", "This field is required.")
	}
	if f.ConfirmPassword == "" {
		errs.Add("confirm_password", "This field is required.")
	}

	return errs
}

// LoginForm carries the raw login submission.
type LoginForm struct {
	Username string
	Password string
}

func (f *LoginForm) Validate() service.FieldErrors {
	errs := service.FieldErrors{}
	if f.Username == "" {
		errs.Add("username", "This field is required.")
	}
	if f.Password == "" {
		errs.Add("password", "This field is required.")
	}
	return errs
}

// TaskForm carries a task create or update submission. Completed arrives
// as a checkbox, so any non-empty value counts as checked.
type TaskForm struct {
	Title       string
	Description string
	Completed   bool
}

func (f *TaskForm) Validate() service.FieldErrors {
	errs := service.FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs.Add("title", "This field is required.")
	} else if len(f.Title) > 255 {
		errs.Add("title", "Title must be 255 characters or fewer.")
	}
	return errs
}
