package service

import (
	"context"
	"errors"

	"task_manager/internal/domain"
	"task_manager/internal/logger"
	"task_manager/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// FieldErrors maps a form field name to the messages reported against it.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

type SignUpInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Accounts implements signup and credential verification over the user
// repository. Validation failures come back as per-field errors; the
// error return is reserved for storage failures.
type Accounts struct {
	users  *repository.UserRepository
	policy Policy
}

func NewAccounts(users *repository.UserRepository) *Accounts {
	return &Accounts{users: users, policy: DefaultPolicy}
}

// Policy exposes the password policy for help text rendering.
func (a *Accounts) Policy() Policy { return a.policy }

// SignUp creates a new account. Every applicable violation is collected
// so the form can show them all at once. The duplicate pre-checks give
// friendly errors; the unique constraints on insert are the authority
// when two signups race.
func (a *Accounts) SignUp(ctx context.Context, in SignUpInput) (*domain.User, FieldErrors, error) {
	fieldErrs := FieldErrors{}

	taken, err := a.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		fieldErrs.Add("username", "This username is already in use.")
	}

	taken, err = a.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		fieldErrs.Add("email", "This email is already in use.")
	}

	if in.Password != in.ConfirmPassword {
		fieldErrs.Add("confirm_password", "The two password fields didn't match.")
	}
	for _, pe := range a.policy.Validate(in.Password) {
		fieldErrs.Add("password", pe.Message)
	}

	if !fieldErrs.Empty() {
		return nil, fieldErrs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := a.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			fieldErrs.Add("username", "This username is already in use.")
			return nil, fieldErrs, nil
		case errors.Is(err, repository.ErrEmailTaken):
			fieldErrs.Add("email", "This email is already in use.")
			return nil, fieldErrs, nil
		}
		return nil, nil, err
	}

	logger.Info("user created", "username", user.Username)
	return user, nil, nil
}

// Authenticate verifies credentials. An unknown username is reported
// against the username field, a wrong password against the password
// field, matching the signup form's per-field error shape.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (*domain.User, FieldErrors, error) {
	fieldErrs := FieldErrors{}

	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			fieldErrs.Add("username", "Invalid username.")
			return nil, fieldErrs, nil
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		fieldErrs.Add("password", "Authentication failed. Invalid password.")
		return nil, fieldErrs, nil
	}

	return user, nil, nil
}
