package entities

import (
	"errors"
	"fmt"
)

// BuildErrorType categorizes failures surfaced to callers of a deck build
type BuildErrorType string

const (
	ErrorTypeValidation    BuildErrorType = "validation"
	ErrorTypeTemplate      BuildErrorType = "template"
	ErrorTypeFilesystem    BuildErrorType = "filesystem"
	ErrorTypeGeneration    BuildErrorType = "generation"
	ErrorTypeConfiguration BuildErrorType = "configuration"
	ErrorTypeRenderer      BuildErrorType = "renderer"
)

// BuildError is the single typed failure returned by build and generation operations
type BuildError struct {
	Type    BuildErrorType `json:"type"`
	Message string         `json:"message"`
	Details string         `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *BuildError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg = fmt.Sprintf("%s - %s", msg, e.Details)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// NewBuildError creates a typed build error
func NewBuildError(t BuildErrorType, message string, cause error) *BuildError {
	return &BuildError{Type: t, Message: message, Cause: cause}
}

// IsBuildErrorType reports whether err wraps a BuildError of the given type
func IsBuildErrorType(err error, t BuildErrorType) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Type == t
	}
	return false
}
