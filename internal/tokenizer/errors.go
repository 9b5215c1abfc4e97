package tokenizer

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidPattern      = errors.New("split pattern does not compile")
	ErrVocabSizeTooSmall   = errors.New("target vocab size must be at least 256")
	ErrNoTrainTarget       = errors.New("either VocabSize or NumMerges must be provided")
	ErrTokenOutOfRange     = errors.New("token id outside vocabulary range")
	ErrInvalidUTF8         = errors.New("decoded bytes are not valid UTF-8")
	ErrMergeNotConsecutive = errors.New("merge ids must be consecutive starting at 256")
	ErrOrphanMerge         = errors.New("merge references an id that is not yet defined")
)

// DecodeError provides detailed information about a failed Decode call.
type DecodeError struct {
	Token int32 // offending token id (out-of-range failures)
	Index int   // position in the input sequence, -1 if not positional
	Err   error // underlying sentinel error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("decode: token %d at index %d: %v", e.Token, e.Index, e.Err)
	}
	return fmt.Sprintf("decode: %v", e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
