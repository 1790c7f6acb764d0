package service

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ValidationError carries per-field messages for malformed input. The HTTP
// layer renders Fields directly so callers see which field failed and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// asValidationError converts ozzo's error map into our ValidationError.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validation.Errors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		fields[field] = ferr.Error()
	}
	return &ValidationError{Fields: fields}
}

type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PhoneNumber     string `json:"phoneNumber"`
	TermsAgreed     bool   `json:"termsAgreed"`
	MarketingAgreed bool   `json:"marketingAgreed"`
}

func (in RegisterInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&in.ConfirmPassword, validation.Required),
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.PhoneNumber, validation.Length(0, 32)),
		validation.Field(&in.TermsAgreed,
			validation.Required.Error("terms must be accepted")),
	))
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	))
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

func (in RefreshInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.RefreshToken, validation.Required),
	))
}

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

func (in ForgotPasswordInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
	))
}

type ResetPasswordInput struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (in ResetPasswordInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Token, validation.Required),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&in.ConfirmPassword, validation.Required),
	))
}

type LogoutInput struct {
	RefreshToken string `json:"refreshToken"`
}

func (in LogoutInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.RefreshToken, validation.Required),
	))
}
