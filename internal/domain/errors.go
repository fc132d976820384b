package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnknownSize       = errors.New("unknown size")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrSourceUnknown     = errors.New("source content type and path are unknown")
	ErrDuplicateJob      = errors.New("an active job already exists for this source and size")
	ErrClaimLost         = errors.New("job was claimed or changed by someone else")
	ErrUnsupported       = errors.New("content type not supported")
	ErrCorruptContent    = errors.New("corrupt or unparseable content")
	ErrTransient         = errors.New("transient resource failure")
	ErrObjectNotFound    = errors.New("object not found")
	ErrInvalidSignedURL  = errors.New("signed url is invalid or expired")
	ErrInvalidTransition = errors.New("invalid job status transition")
)

// RenderError is returned by renderers. Kind is one of ErrCorruptContent,
// ErrTransient or ErrUnsupported and is matched by errors.Is.
type RenderError struct {
	Kind error
	Op   string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Corrupt(op string, err error) error {
	return &RenderError{Kind: ErrCorruptContent, Op: op, Err: err}
}

func Transient(op string, err error) error {
	return &RenderError{Kind: ErrTransient, Op: op, Err: err}
}

// FailureKind names the taxonomy bucket of an attempt failure for logs.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrCorruptContent):
		return "permanent"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	default:
		return "transient"
	}
}
