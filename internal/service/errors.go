package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrInvalidInput            = errors.New("invalid input")
	ErrConflict                = errors.New("conflict")
	ErrContractHasSubcontracts = errors.New("contract has active subcontracts")
	ErrInvalidCredentials      = errors.New("invalid username or password")

	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrGroupNotFound     = fmt.Errorf("group %w", ErrNotFound)
	ErrIncorrectAnswer   = errors.New("incorrect answer or wrong question")
	ErrResetNotStarted   = errors.New("password reset not started")
	ErrAnswerNotVerified = errors.New("security answer not verified")
)

type Violation struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError carries every rule violation of one submission.
// errors.Is(err, ErrInvalidInput) holds for it.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Field != "" {
			msgs = append(msgs, v.Field+": "+v.Message)
			continue
		}
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

type violations []Violation

func (v *violations) add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Violations: v}
}
