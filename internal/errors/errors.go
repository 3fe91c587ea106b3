// Package errors formats Brew runtime and syntax errors with source context,
// the way go-dws/internal/errors formats DWScript compiler errors.
package errors

import (
	"fmt"
	"strings"

	"github.com/brewlang/brew/internal/lexer"
)

// Kind distinguishes the error categories spec.md §7 defines, plus a
// SyntaxError kind for the parser, which spec.md leaves unspecified.
type Kind string

const (
	NameError   Kind = "NAME_ERROR"
	TypeError   Kind = "TYPE_ERROR"
	SyntaxError Kind = "SYNTAX_ERROR"
)

// Error is a fatal, fully-formatted Brew error. Every language-level failure
// the interpreter raises is an *Error; nothing in internal/interp panics for
// a language-level condition.
type Error struct {
	Kind    Kind
	Message string
	Source  string
	Pos     lexer.Position
}

// New creates an Error with no source-position context (used when the
// failing node carries none, e.g. synthetic calls from builtins).
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt creates an Error positioned at pos within source.
func NewAt(kind Kind, pos lexer.Position, source, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Source: source, Pos: pos}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Format() }

// Format renders the error with a source-line-and-caret view when position
// information is available, and a bare "KIND: message" otherwise.
func (e *Error) Format() string {
	if e.Pos.Line == 0 || e.Source == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FromStringErrors converts plain parser error strings (which already embed
// a "line N:" prefix; see internal/parser) into formatted Errors so callers
// have a single rendering path for syntax and runtime failures alike.
func FromStringErrors(msgs []string, source string) []*Error {
	out := make([]*Error, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, &Error{Kind: SyntaxError, Message: m, Source: source})
	}
	return out
}

// FormatErrors renders a batch of errors separated by blank lines.
func FormatErrors(errs []*Error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format()
	}
	return strings.Join(parts, "\n\n")
}
