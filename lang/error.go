package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput        = NewError("failed to read input")
	ErrConstantNotFound = NewError("constant not found")
	ErrInvalidCache     = NewError("invalid cache entry")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error sharing the same base message.
// Derived errors created by Wrap and With keep the base message of their
// sentinel, so they continue to match it under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// LexError reports a malformed lexical element.
//
// Pos is the zero-based rune offset of the offending character or the start
// of the offending element. When Source is attached, Error renders a
// line/column caret snippet pointing at the offense.
type LexError struct {
	Msg    string
	Pos    int
	Source string // The original source input
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return "lex error at offset " + strconv.Itoa(e.Pos) + ": " + e.Msg +
		formatOffset(e.Source, e.Pos)
}

// LogValue implements slog.LogValuer.
func (e *LexError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Msg),
		slog.Int("offset", e.Pos),
	)
}

// ParseError reports a grammar violation or an unresolvable reference.
//
// Pos is the zero-based rune offset of the offending token. When Source is
// attached, Error renders a line/column caret snippet pointing at the token.
type ParseError struct {
	Msg    string
	Pos    int
	Source string // The original source input
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parse error at offset " + strconv.Itoa(e.Pos) + ": " + e.Msg +
		formatOffset(e.Source, e.Pos)
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Msg),
		slog.Int("offset", e.Pos),
	)
}

// attachSource stores the source text in any LexError or ParseError found in
// err so that its message can include a caret snippet.
func attachSource(err error, source string) {
	le := &LexError{}
	if errors.As(err, &le) {
		le.Source = source

		return
	}

	pe := &ParseError{}
	if errors.As(err, &pe) {
		pe.Source = source
	}
}

// formatOffset renders a source snippet with a caret marking the line and
// column containing the given rune offset. Returns "" when no source is
// available.
func formatOffset(source string, pos int) string {
	if source == "" {
		return ""
	}

	line, col := locate(source, pos)
	lines := strings.Split(source, "\n")

	var buf strings.Builder

	// Write error location and description
	buf.WriteString("\nline ")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(col))
	buf.WriteString(":\n")

	// Show the offending line if within bounds
	if line > 0 && line <= len(lines) {
		lineText := lines[line-1]

		// Print the line with line number
		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(line))
		buf.WriteString(" | ")
		buf.WriteString(lineText)
		buf.WriteRune('\n')

		// Print marker pointing to the column
		// Calculate the width needed for line number display
		lineNumWidth := len(strconv.Itoa(line))
		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", lineNumWidth+5)

		// Add spaces to reach the error column
		if col > 0 {
			padding += strings.Repeat(" ", col-1)
		}

		buf.WriteString(padding + "^\n")
	}

	return buf.String()
}

// locate converts a zero-based rune offset into 1-based line and column
// numbers. Offsets at or past the end of input point just past the last rune.
func locate(source string, pos int) (line, col int) {
	line, col = 1, 1

	for i, r := range []rune(source) {
		if i >= pos {
			break
		}

		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return line, col
}
