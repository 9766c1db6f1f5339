package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLen = 6
	MaxNameLen     = 64
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator - поверхностная проверка данных форм до отправки на сервер
type Validator interface {
	ValidateRegister(req RegisterRequest) error
	ValidateProfile(req ProfileRequest) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type FormValidator struct{}

func NewValidator() *FormValidator {
	return &FormValidator{}
}

// ValidateRegister валидирует данные для регистрации
func (v *FormValidator) ValidateRegister(req RegisterRequest) error {
	if err := v.validateName(req.Name); err != nil {
		return fmt.Errorf("name validation failed: %w", err)
	}

	if err := v.ValidateEmail(req.Email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}

	if err := v.ValidatePassword(req.Password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

// ValidateProfile валидирует изменение профиля
func (v *FormValidator) ValidateProfile(req ProfileRequest) error {
	if err := v.validateName(req.Name); err != nil {
		return fmt.Errorf("name validation failed: %w", err)
	}

	if err := v.ValidateEmail(req.Email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}

	return nil
}

func (v *FormValidator) ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email %q is not valid", email)
	}
	return nil
}

func (v *FormValidator) ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

func (v *FormValidator) validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("name must be at most %d characters", MaxNameLen)
	}
	return nil
}
