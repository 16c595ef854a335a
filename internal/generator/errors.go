package generator

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the description is empty after trimming.
var ErrEmptyInput = errors.New("description is empty")

// GenerationError reports an unexpected failure inside the pipeline.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating website: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
