package interp

import (
	"strings"

	"github.com/brewlang/brew/internal/ast"
	brewerrors "github.com/brewlang/brew/internal/errors"
)

// execBlock runs stmts in order, stopping and bubbling up a return as soon
// as one occurs. Grounded on go-dws/internal/interp/statements.go's
// per-statement dispatch and on
// original_source/Brewin/interpreterv4.py's run_statement loop.
func (it *Interpreter) execBlock(stmts []ast.Statement) (signal, Value, *brewerrors.Error) {
	for _, s := range stmts {
		sig, val, err := it.execStatement(s)
		if err != nil {
			return sigNone, nil, err
		}
		if sig == sigReturn {
			return sigReturn, val, nil
		}
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execStatement(s ast.Statement) (signal, Value, *brewerrors.Error) {
	switch n := s.(type) {
	case *ast.AssignStatement:
		return sigNone, nil, it.execAssign(n)
	case *ast.IfStatement:
		return it.execIf(n)
	case *ast.WhileStatement:
		return it.execWhile(n)
	case *ast.ReturnStatement:
		return it.execReturn(n)
	case *ast.CallStatement:
		_, err := it.Eval(n.Call)
		return sigNone, nil, err
	default:
		return sigNone, nil, brewerrors.New(brewerrors.TypeError, "cannot execute statement of type %T", s)
	}
}

// execAssign implements spec.md §4.4's assignment rule: a dotted target
// writes a member (creating it if absent); a plain target writes through
// the environment's lambda-floor-aware search, and — if the name
// participates in the current call's alias graph — propagates the same
// value to every aliased name as well.
func (it *Interpreter) execAssign(n *ast.AssignStatement) *brewerrors.Error {
	val, err := it.Eval(n.Value)
	if err != nil {
		return err
	}

	if i := strings.LastIndex(n.Target, "."); i >= 0 {
		return it.assignMember(n.Target[:i], n.Target[i+1:], val)
	}

	it.env.Assign(n.Target, val, it.lambdaFloor)

	if table := it.currentAliases(); table != nil {
		for _, alias := range table.Closure(n.Target) {
			it.env.Assign(alias, val, it.lambdaFloor)
		}
	}
	return nil
}

// assignMember writes a value into a (possibly multi-level dotted) object's
// member, creating the member if it does not already exist on that exact
// object (proto members are shadowed, never mutated in place).
func (it *Interpreter) assignMember(objPath, member string, val Value) *brewerrors.Error {
	target, err := it.resolveName(objPath)
	if err != nil {
		return err
	}
	obj, ok := target.(*ObjectValue)
	if !ok {
		return brewerrors.New(brewerrors.TypeError, "cannot assign member %q of non-object value", member)
	}
	if member == "proto" {
		proto, ok := val.(*ObjectValue)
		if !ok {
			if _, isNil := val.(NilValue); !isNil {
				return brewerrors.New(brewerrors.TypeError, "proto must be an object or nil")
			}
			obj.Proto = nil
			return nil
		}
		obj.Proto = proto
		return nil
	}
	obj.Members[member] = val
	return nil
}

func (it *Interpreter) execIf(n *ast.IfStatement) (signal, Value, *brewerrors.Error) {
	cond, err := it.Eval(n.Condition)
	if err != nil {
		return sigNone, nil, err
	}
	truthy, ok := IsTruthy(cond)
	if !ok {
		return sigNone, nil, brewerrors.New(brewerrors.TypeError, "if condition must be bool/int, got %s", cond.Type())
	}

	it.env.Push()
	defer it.env.Pop()

	if truthy {
		return it.execBlock(n.Then)
	}
	return it.execBlock(n.Else)
}

func (it *Interpreter) execWhile(n *ast.WhileStatement) (signal, Value, *brewerrors.Error) {
	for {
		cond, err := it.Eval(n.Condition)
		if err != nil {
			return sigNone, nil, err
		}
		truthy, ok := IsTruthy(cond)
		if !ok {
			return sigNone, nil, brewerrors.New(brewerrors.TypeError, "while condition must be bool/int, got %s", cond.Type())
		}
		if !truthy {
			return sigNone, nil, nil
		}

		it.env.Push()
		sig, val, err := it.execBlock(n.Body)
		it.env.Pop()
		if err != nil {
			return sigNone, nil, err
		}
		if sig == sigReturn {
			return sigReturn, val, nil
		}
	}
}

// execReturn evaluates the return expression (nil means bare "return;",
// which yields NilValue per spec.md §4.4) and deep-copies the result to
// detach it from any caller-mutable state before it crosses the call
// boundary.
func (it *Interpreter) execReturn(n *ast.ReturnStatement) (signal, Value, *brewerrors.Error) {
	if n.Value == nil {
		return sigReturn, NilValue{}, nil
	}
	val, err := it.Eval(n.Value)
	if err != nil {
		return sigNone, nil, err
	}
	return sigReturn, DeepCopy(val), nil
}
