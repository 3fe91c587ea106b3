// Package interp implements the Brew tree-walking interpreter: the runtime
// Value model, the lexically-scoped Environment, reference-parameter
// aliasing, expression evaluation, statement execution, and call machinery
// described by the language specification.
//
// Grounded on go-dws/internal/interp/value.go's tagged-interface Value
// model (one concrete struct per kind, Type()/String() methods),
// generalized from DWScript's many numeric/collection kinds down to
// Brew's seven.
package interp

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/brewlang/brew/internal/ast"
)

// Value is a runtime value. All seven Brew value kinds implement it.
type Value interface {
	Type() string
	String() string
}

// NilValue is Brew's absence-of-value.
type NilValue struct{}

func (NilValue) Type() string   { return "NIL" }
func (NilValue) String() string { return "nil" }

// IntValue is a 64-bit signed integer.
type IntValue struct{ Value int64 }

func (v IntValue) Type() string   { return "INT" }
func (v IntValue) String() string { return strconv.FormatInt(v.Value, 10) }

// BoolValue is a boolean, rendered lowercase per spec.md §6.
type BoolValue struct{ Value bool }

func (v BoolValue) Type() string { return "BOOL" }
func (v BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// StringValue is an immutable string.
type StringValue struct{ Value string }

func (v StringValue) Type() string   { return "STRING" }
func (v StringValue) String() string { return v.Value }

// ObjectValue is a mutable attribute map linked into a lookup chain by an
// optional Proto link. Identity (pointer equality) is the only equality
// Object values support — two distinct ObjectExpr evaluations are never
// equal. ID exists purely for trace-log correlation; it plays no part in
// equality or lookup.
type ObjectValue struct {
	ID      uuid.UUID
	Proto   *ObjectValue
	Members map[string]Value
}

// NewObject creates a fresh object with nil proto and no members.
func NewObject() *ObjectValue {
	return &ObjectValue{ID: uuid.New(), Members: make(map[string]Value)}
}

func (o *ObjectValue) Type() string { return "OBJECT" }
func (o *ObjectValue) String() string {
	return fmt.Sprintf("object<%s>", o.ID.String()[:8])
}

// ClosureValue is a lambda AST node paired with its persistent captured
// frame stack (primitives only — see Environment.CaptureSnapshot).
type ClosureValue struct {
	Node     *ast.LambdaExpr
	Captured []*Frame
}

func (c *ClosureValue) Type() string   { return "CLOSURE" }
func (c *ClosureValue) String() string { return "closure" }

// FuncHandleValue is a reference to a named top-level function, usable as a
// first-class value (e.g. a bare function name resolved as a variable).
type FuncHandleValue struct {
	Node *ast.FunctionDecl
}

func (f *FuncHandleValue) Type() string   { return "FUNCTION" }
func (f *FuncHandleValue) String() string { return "function " + f.Node.Name }

// IsTruthy applies the Int/Bool -> Bool coercion rule of spec.md §3: zero is
// false, non-zero is true; Bool values pass through. Callers that need a
// TYPE_ERROR for any other kind check the concrete type themselves first.
func IsTruthy(v Value) (bool, bool) {
	switch vv := v.(type) {
	case BoolValue:
		return vv.Value, true
	case IntValue:
		return vv.Value != 0, true
	default:
		return false, false
	}
}

// deepCopy produces an independent copy of v, following spec.md §4.5's
// by-value-parameter and §4.4's return-value rules: primitives copy
// trivially, a Closure copies its captured stack (sharing the AST node
// pointer), and an Object copies its entire member/proto graph. memo
// preserves shared structure and breaks proto cycles, mirroring Python's
// copy.deepcopy memoization in the reference implementation.
func deepCopy(v Value, memo map[*ObjectValue]*ObjectValue) Value {
	switch vv := v.(type) {
	case nil:
		return nil
	case NilValue, IntValue, BoolValue, StringValue:
		return vv
	case *ObjectValue:
		return deepCopyObject(vv, memo)
	case *ClosureValue:
		return &ClosureValue{Node: vv.Node, Captured: deepCopyFrames(vv.Captured, memo)}
	case *FuncHandleValue:
		return vv
	default:
		return v
	}
}

func deepCopyObject(o *ObjectValue, memo map[*ObjectValue]*ObjectValue) *ObjectValue {
	if o == nil {
		return nil
	}
	if existing, ok := memo[o]; ok {
		return existing
	}
	copied := &ObjectValue{ID: uuid.New(), Members: make(map[string]Value, len(o.Members))}
	memo[o] = copied
	copied.Proto = deepCopyObject(o.Proto, memo)
	for k, v := range o.Members {
		copied.Members[k] = deepCopy(v, memo)
	}
	return copied
}

func deepCopyFrames(frames []*Frame, memo map[*ObjectValue]*ObjectValue) []*Frame {
	out := make([]*Frame, len(frames))
	for i, f := range frames {
		out[i] = f.deepCopy(memo)
	}
	return out
}

// DeepCopy is the exported entry point used by call machinery and the
// return statement.
func DeepCopy(v Value) Value {
	return deepCopy(v, make(map[*ObjectValue]*ObjectValue))
}
