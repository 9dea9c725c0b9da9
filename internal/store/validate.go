package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	ErrFieldsRequired    = errors.New("all fields are required")
	ErrUsernameTooShort  = errors.New("username must be at least 4 characters long")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrWeakPassword      = errors.New("password must be 8+ characters and contain an uppercase letter, a digit and one of @#$%^&+=")
	ErrDuplicateUsername = errors.New("username already exists")
)

// passwordSpecials is the accepted special-character set for the password policy.
const passwordSpecials = "@#$%^&+="

// emailPattern accepts local@domain.tld with a 2-6 letter TLD.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("account_email", validAccountEmail)
	validate.RegisterValidation("password_policy", validPassword)
}

// registration carries the validation tags for a new account request.
type registration struct {
	Username string `validate:"required,min=4"`
	Password string `validate:"required,password_policy"`
	Email    string `validate:"required,account_email"`
}

func validAccountEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// validPassword checks the four policy conditions independently: length,
// uppercase, digit and special character, in no particular scan order.
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	return hasUpper && hasDigit && hasSpecial
}

// checkRegistration validates the field values and maps validator errors to
// one specific reason. Missing fields are reported before per-field shape
// violations; field precedence is username, then email, then password.
func checkRegistration(username, password, email string) error {
	err := validate.Struct(registration{
		Username: username,
		Password: password,
		Email:    email,
	})
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("failed to validate registration: %w", err)
	}

	failed := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		if fe.Tag() == "required" {
			return ErrFieldsRequired
		}
		failed[fe.Field()] = fe.Tag()
	}

	for _, field := range []string{"Username", "Email", "Password"} {
		if _, ok := failed[field]; !ok {
			continue
		}
		switch field {
		case "Username":
			return ErrUsernameTooShort
		case "Email":
			return ErrInvalidEmail
		case "Password":
			return ErrWeakPassword
		}
	}

	return fmt.Errorf("failed to validate registration: %w", err)
}
