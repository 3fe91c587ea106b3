package interp

import (
	"bufio"
	"io"
	"sort"

	"github.com/go-logr/logr"

	"github.com/brewlang/brew/internal/ast"
	brewerrors "github.com/brewlang/brew/internal/errors"
)

// signal reports how a statement block finished: normally, or by bubbling a
// return up out of loops and conditionals.
type signal int

const (
	sigNone signal = iota
	sigReturn
)

// Interpreter holds everything one Run of a Brew program needs: the
// function table, the live environment, the receiver and alias-table
// stacks that track the current call's "this" and reference-parameter
// aliases, and the host collaborators (I/O, trace logging).
//
// Grounded on go-dws/internal/interp's top-level Interpreter wiring
// (function table + environment + Run entrypoint), and on
// original_source/Brewin/interpreterv4.py's Interpreter class for the
// call-stack bookkeeping (ref_mapping stack, this-object stack,
// lambda_scope_index) that go-dws has no equivalent of.
type Interpreter struct {
	functions map[string]map[int]*ast.FunctionDecl

	env           *Environment
	receiverStack []*ObjectValue
	aliasStack    []*AliasTable
	lambdaFloor   int

	out    io.Writer
	in     *bufio.Reader
	log    logr.Logger
	source string
}

// New creates an Interpreter reading input from in and writing output to
// out. log may be logr.Discard() when trace logging is not wanted.
func New(out io.Writer, in io.Reader, log logr.Logger) *Interpreter {
	return &Interpreter{
		functions: make(map[string]map[int]*ast.FunctionDecl),
		env:       NewEnvironment(),
		out:       out,
		in:        bufio.NewReader(in),
		log:       log,
	}
}

// Run loads prog's function table and invokes main/0.
func (it *Interpreter) Run(prog *ast.Program, source string) *brewerrors.Error {
	it.source = source
	it.loadFunctions(prog)

	main, ok := it.lookupFunction("main", 0)
	if !ok {
		return brewerrors.New(brewerrors.NameError, "program has no main() function")
	}

	it.log.V(1).Info("starting run", "function", "main", "arity", 0)
	_, err := it.callDecl(main, nil, nil)
	return err
}

func (it *Interpreter) loadFunctions(prog *ast.Program) {
	for _, fn := range prog.Functions {
		byArity, ok := it.functions[fn.Name]
		if !ok {
			byArity = make(map[int]*ast.FunctionDecl)
			it.functions[fn.Name] = byArity
		}
		byArity[len(fn.Params)] = fn
	}
}

func (it *Interpreter) lookupFunction(name string, arity int) (*ast.FunctionDecl, bool) {
	byArity, ok := it.functions[name]
	if !ok {
		return nil, false
	}
	fn, ok := byArity[arity]
	return fn, ok
}

// lookupAnyArity resolves a bare function name referenced as a value (not
// called), picking the lowest-arity overload for determinism when more than
// one exists.
func (it *Interpreter) lookupAnyArity(name string) (*ast.FunctionDecl, bool) {
	byArity, ok := it.functions[name]
	if !ok || len(byArity) == 0 {
		return nil, false
	}
	arities := make([]int, 0, len(byArity))
	for a := range byArity {
		arities = append(arities, a)
	}
	sort.Ints(arities)
	return byArity[arities[0]], true
}

func (it *Interpreter) currentReceiver() *ObjectValue {
	if len(it.receiverStack) == 0 {
		return nil
	}
	return it.receiverStack[len(it.receiverStack)-1]
}

func (it *Interpreter) pushReceiver(obj *ObjectValue) {
	it.receiverStack = append(it.receiverStack, obj)
}

func (it *Interpreter) popReceiver() {
	it.receiverStack = it.receiverStack[:len(it.receiverStack)-1]
}

func (it *Interpreter) currentAliases() *AliasTable {
	if len(it.aliasStack) == 0 {
		return nil
	}
	return it.aliasStack[len(it.aliasStack)-1]
}

func (it *Interpreter) pushAliases(t *AliasTable) {
	it.aliasStack = append(it.aliasStack, t)
}

func (it *Interpreter) popAliases() {
	it.aliasStack = it.aliasStack[:len(it.aliasStack)-1]
}

