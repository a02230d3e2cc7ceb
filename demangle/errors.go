package demangle

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrBadEscape     = errors.New("demangle: unknown escape character")
	ErrUnexpectedEnd = errors.New("demangle: unexpected end of input")
	ErrBadTerminator = errors.New("demangle: missing escape terminator")
	ErrBadCodePoint  = errors.New("demangle: code point out of range")
	ErrBadArity      = errors.New("demangle: invalid tuple arity")
)

// DecodeError reports a decode failure and where in the input it occurred.
type DecodeError struct {
	Input string // the mangled input
	Pos   int    // byte offset of the offending character
	Err   error  // underlying sentinel error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("demangle: %q at offset %d: %v", e.Input, e.Pos, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
