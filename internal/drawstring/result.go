package drawstring

import (
	"errors"
	"fmt"
)

var (
	ErrNoSurface        = errors.New("no drawing surface")
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidFontSize  = errors.New("invalid font size")
)

// InstructionError records a failed instruction. Failures never stop a render.
type InstructionError struct {
	Line    int
	Command string
	Err     error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Command, e.Err)
}

func (e *InstructionError) Unwrap() error { return e.Err }

// Result summarizes one render call.
type Result struct {
	// Instructions is the number of non-comment, non-blank lines.
	Instructions int
	// Executed counts instructions whose command was recognized, failed or not.
	Executed int
	// Skipped holds instructions with unknown command names.
	Skipped []Instruction
	Errors  []*InstructionError
}

// OK reports whether every recognized instruction succeeded.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Err joins all instruction errors, or returns nil.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}
