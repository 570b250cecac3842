package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const msgDigitsOnly = "field must contain digits only"

func (v *violations) required(field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "this field is required")
		return
	}
	v.maxLength(field, value, max)
}

func (v *violations) maxLength(field, value string, max int) {
	if max > 0 && utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// digits checks an optional numeric-only field.
func (v *violations) digits(field, value string, max int) {
	if value == "" {
		return
	}
	if !isDigits(value) {
		v.add(field, msgDigitsOnly)
		return
	}
	v.maxLength(field, value, max)
}

// requiredDigits checks a mandatory numeric-only field.
func (v *violations) requiredDigits(field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "this field is required")
		return
	}
	v.digits(field, value, max)
}

func (v *violations) email(field, value string, max int) {
	if value == "" {
		return
	}
	if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
		v.add(field, "enter a valid email address")
		return
	}
	v.maxLength(field, value, max)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
