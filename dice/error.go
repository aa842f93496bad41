package dice

import (
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every parse failure is reported as a [*ParseError]; the sentinels only
// classify the failure and can be matched with [errors.Is].
var (
	ErrEmpty         = NewParseError("empty expression")
	ErrInvalidTerm   = NewParseError("invalid term")
	ErrInvalidCheck  = NewParseError("invalid check")
	ErrInvalidAttack = NewParseError("invalid attack")
	ErrOverflow      = NewParseError("number out of range")
	ErrZeroSides     = NewParseError("die must have at least one side")
)

// ParseError is the single error kind returned by the parsers in this package.
// It implements both error and slog.LogValuer interfaces.
type ParseError struct {
	msg   string
	input string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewParseError creates a new ParseError with a static description.
func NewParseError(msg string) *ParseError {
	return &ParseError{msg: msg}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	// Build error message from whichever fields are set:
	//
	//   <msg> "<input>": <err>
	part := make([]string, 0, 2)

	head := e.msg
	if e.input != "" {
		if head != "" {
			head += " "
		}

		head += strconv.Quote(e.input)
	}

	if head != "" {
		part = append(part, head)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Input returns the offending substring, if any.
func (e *ParseError) Input() string { return e.input }

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ParseError) Unwrap() error { return e.err }

// Is reports whether target is a ParseError with the same description.
// This lets the sentinels match errors derived from them with At, Wrap or With.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *ParseError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.input != "" {
		attrs = append(attrs, slog.String("input", e.input))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// At returns a copy of the error naming the offending substring.
func (e *ParseError) At(input string) *ParseError {
	return &ParseError{
		msg:   e.msg,
		input: input,
		err:   e.err,
		attrs: e.attrs,
	}
}

// Wrap creates a new ParseError wrapping another error.
func (e *ParseError) Wrap(err error) *ParseError {
	return &ParseError{
		msg:   e.msg,
		input: e.input,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new ParseError instance to maintain immutability.
func (e *ParseError) With(attrs ...slog.Attr) *ParseError {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &ParseError{
		msg:   e.msg,
		input: e.input,
		err:   e.err,
		attrs: newAttrs,
	}
}
