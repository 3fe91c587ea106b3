package interp

import (
	"strconv"
	"strings"

	"github.com/brewlang/brew/internal/ast"
	brewerrors "github.com/brewlang/brew/internal/errors"
)

// builtinFunc implements one of the host-provided built-in functions.
// Grounded on original_source/Brewin/interpreterv4.py's printValues and
// do_input, and on go-dws/internal/interp/builtins_core_test.go for the
// expectation that builtins live in their own small registry rather than
// being folded into the user function table.
type builtinFunc func(it *Interpreter, args []ast.Expression) (Value, *brewerrors.Error)

var builtins = map[string]builtinFunc{
	"print":  builtinPrint,
	"inputi": builtinInputi,
	"inputs": builtinInputs,
}

func (it *Interpreter) callBuiltin(fn builtinFunc, args []ast.Expression) (Value, *brewerrors.Error) {
	return fn(it, args)
}

// builtinPrint concatenates the string form of every argument (evaluated
// left to right) and writes one line to the interpreter's output.
func builtinPrint(it *Interpreter, args []ast.Expression) (Value, *brewerrors.Error) {
	var sb strings.Builder
	for _, a := range args {
		v, err := it.Eval(a)
		if err != nil {
			return nil, err
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("\n")
	if _, werr := it.out.Write([]byte(sb.String())); werr != nil {
		return nil, brewerrors.New(brewerrors.TypeError, "print: %v", werr)
	}
	return NilValue{}, nil
}

// builtinInputi prints an optional prompt, reads one line from input, and
// parses it as an integer. A non-integer line is a TYPE_ERROR.
func builtinInputi(it *Interpreter, args []ast.Expression) (Value, *brewerrors.Error) {
	if err := builtinPrompt(it, args); err != nil {
		return nil, err
	}
	line, rerr := it.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if rerr != nil && line == "" {
		return nil, brewerrors.New(brewerrors.TypeError, "inputi: no input available")
	}
	n, perr := strconv.ParseInt(line, 10, 64)
	if perr != nil {
		return nil, brewerrors.New(brewerrors.TypeError, "inputi: %q is not an integer", line)
	}
	return IntValue{Value: n}, nil
}

// builtinInputs prints an optional prompt and reads one line of input as a
// string.
func builtinInputs(it *Interpreter, args []ast.Expression) (Value, *brewerrors.Error) {
	if err := builtinPrompt(it, args); err != nil {
		return nil, err
	}
	line, rerr := it.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if rerr != nil && line == "" {
		return nil, brewerrors.New(brewerrors.TypeError, "inputs: no input available")
	}
	return StringValue{Value: line}, nil
}

func builtinPrompt(it *Interpreter, args []ast.Expression) *brewerrors.Error {
	if len(args) == 0 {
		return nil
	}
	v, err := it.Eval(args[0])
	if err != nil {
		return err
	}
	if _, werr := it.out.Write([]byte(v.String())); werr != nil {
		return brewerrors.New(brewerrors.TypeError, "prompt: %v", werr)
	}
	return nil
}
