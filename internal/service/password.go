package service

import (
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72

	MsgPasswordTooShort  = "password must be at least 8 characters long"
	MsgPasswordTooLong   = "password must be at most 72 bytes long"
	MsgPasswordUppercase = "password must contain at least one uppercase letter"
	MsgPasswordLowercase = "password must contain at least one lowercase letter"
	MsgPasswordDigit     = "password must contain at least one digit"
	MsgPasswordMismatch  = "passwords do not match"
)

// PasswordFields names the request fields a password and its confirmation arrive in.
type PasswordFields struct {
	Password string
	Confirm  string
}

var (
	NewPasswordFields    = PasswordFields{Password: "new_password", Confirm: "new_password_confirm"}
	SignUpPasswordFields = PasswordFields{Password: "password", Confirm: "password_confirm"}
)

// ValidatePassword checks every strength rule and reports all failures under field.
func ValidatePassword(field, password string) []Violation {
	var v violations
	if utf8.RuneCountInString(password) < minPasswordLength {
		v.add(field, MsgPasswordTooShort)
	}
	if len(password) > maxPasswordBytes {
		v.add(field, MsgPasswordTooLong)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		v.add(field, MsgPasswordUppercase)
	}
	if !lower {
		v.add(field, MsgPasswordLowercase)
	}
	if !digit {
		v.add(field, MsgPasswordDigit)
	}
	return v
}

// ValidateNewPassword adds the confirmation rule to ValidatePassword.
func ValidateNewPassword(fields PasswordFields, password, confirm string) error {
	v := violations(ValidatePassword(fields.Password, password))
	if password != confirm {
		v.add(fields.Confirm, MsgPasswordMismatch)
	}
	return v.err()
}
