package formatter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStyle is matched by every configuration error.
	ErrInvalidStyle = errors.New("formatter: invalid style")
	// ErrOutput is matched by errors writing to the output.
	ErrOutput = errors.New("formatter: could not write to output")
)

// StyleError describes one rejected style field.
type StyleError struct {
	Field  string
	Reason string
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidStyle, e.Field, e.Reason)
}

func (e *StyleError) Unwrap() error { return ErrInvalidStyle }
