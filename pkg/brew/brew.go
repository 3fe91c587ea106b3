// Package brew is the host-facing facade over the Brew interpreter: it
// wires the lexer, parser, and internal/interp together behind a small
// Options/Run API, the way go-dws/pkg/dwscript fronts the DWScript engine
// for embedders.
package brew

import (
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/brewlang/brew/internal/errors"
	"github.com/brewlang/brew/internal/interp"
	"github.com/brewlang/brew/internal/lexer"
	"github.com/brewlang/brew/internal/parser"
)

// Options configures a host run. The zero value runs with os.Stdout,
// os.Stdin, and trace logging off.
type Options struct {
	Output io.Writer
	Input  io.Reader
	Trace  bool
	Logger logr.Logger
}

func (o Options) withDefaults() Options {
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if o.Input == nil {
		o.Input = os.Stdin
	}
	if o.Logger.GetSink() == nil {
		if o.Trace {
			stdr.SetVerbosity(1)
			o.Logger = stdr.New(log.New(os.Stderr, "", log.LstdFlags))
		} else {
			o.Logger = logr.Discard()
		}
	}
	return o
}

// Engine runs Brew source programs against a fixed set of host
// collaborators (output, input, trace logging).
type Engine struct {
	opts Options
}

// New creates an Engine from opts, filling in unset fields with defaults.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Run lexes, parses, and executes source. It returns every syntax error the
// parser reported, or else the runtime error that stopped execution.
func (e *Engine) Run(source string) error {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		syntaxErrs := errors.FromStringErrors(p.Errors(), source)
		return &ProgramError{Errors: syntaxErrs}
	}

	it := interp.New(e.opts.Output, e.opts.Input, e.opts.Logger)
	if err := it.Run(program, source); err != nil {
		return &ProgramError{Errors: []*errors.Error{err}}
	}
	return nil
}

// ProgramError wraps one or more formatted Brew errors (syntax or runtime)
// so callers can report them with source context.
type ProgramError struct {
	Errors []*errors.Error
}

func (e *ProgramError) Error() string {
	return errors.FormatErrors(e.Errors)
}
