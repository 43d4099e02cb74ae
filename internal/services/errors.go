package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotStored   = errors.New("user has not been stored yet")
	ErrUserNotFound    = errors.New("user not found")
	ErrGigNotFound     = errors.New("gig not found")
	ErrSkillNotFound   = errors.New("skill not found")
	ErrNotOwner        = errors.New("only the seller can modify this gig")
	ErrDuplicateSkill  = errors.New("skill already listed")
	ErrUnknownCategory = errors.New("subcategory does not exist")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
