package interp

import (
	"strings"

	"github.com/brewlang/brew/internal/ast"
	brewerrors "github.com/brewlang/brew/internal/errors"
)

// Eval evaluates expr against the interpreter's current environment,
// receiver, and lambda floor. Grounded on
// go-dws/internal/interp/expressions.go's switch-over-concrete-AST-type
// dispatch, and on original_source/Brewin/interpreterv4.py's
// evaluate_expression for the coercion/overload rules themselves.
func (it *Interpreter) Eval(expr ast.Expression) (Value, *brewerrors.Error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return IntValue{Value: n.Value}, nil
	case *ast.StringLiteral:
		return StringValue{Value: n.Value}, nil
	case *ast.BoolLiteral:
		return BoolValue{Value: n.Value}, nil
	case *ast.NilLiteral:
		return NilValue{}, nil
	case *ast.VarExpr:
		return it.resolveName(n.Name)
	case *ast.ObjectExpr:
		return NewObject(), nil
	case *ast.LambdaExpr:
		return &ClosureValue{Node: n, Captured: it.env.CaptureSnapshot()}, nil
	case *ast.FuncCallExpr:
		return it.evalFuncCall(n)
	case *ast.MethodCallExpr:
		return it.evalMethodCall(n)
	case *ast.UnaryExpr:
		return it.evalUnary(n)
	case *ast.BinaryExpr:
		return it.evalBinary(n)
	default:
		return nil, brewerrors.New(brewerrors.TypeError, "cannot evaluate expression of type %T", expr)
	}
}

// resolveName resolves a plain or dotted name: "this", a variable, or a
// chain of member accesses walking the prototype chain at each step, per
// spec.md §4.1/§4.3.
func (it *Interpreter) resolveName(name string) (Value, *brewerrors.Error) {
	parts := strings.Split(name, ".")

	head, err := it.resolveHead(parts[0])
	if err != nil {
		return nil, err
	}

	cur := head
	for _, member := range parts[1:] {
		obj, ok := cur.(*ObjectValue)
		if !ok {
			return nil, brewerrors.New(brewerrors.TypeError, "cannot access member %q of non-object value", member)
		}
		v, ok := lookupMember(obj, member)
		if !ok {
			return nil, brewerrors.New(brewerrors.NameError, "object has no member %q", member)
		}
		cur = v
	}
	return cur, nil
}

func (it *Interpreter) resolveHead(name string) (Value, *brewerrors.Error) {
	if name == "this" {
		if obj := it.currentReceiver(); obj != nil {
			return obj, nil
		}
		return nil, brewerrors.New(brewerrors.NameError, "'this' is not bound outside a method call")
	}
	if v, ok := it.env.Lookup(name, it.lambdaFloor); ok {
		return v, nil
	}
	if fn, ok := it.lookupAnyArity(name); ok {
		return &FuncHandleValue{Node: fn}, nil
	}
	return nil, brewerrors.New(brewerrors.NameError, "undefined variable %q", name)
}

// lookupMember walks the proto chain starting at obj, looking for member.
func lookupMember(obj *ObjectValue, member string) (Value, bool) {
	for o := obj; o != nil; o = o.Proto {
		if v, ok := o.Members[member]; ok {
			return v, true
		}
	}
	return nil, false
}

func (it *Interpreter) evalUnary(n *ast.UnaryExpr) (Value, *brewerrors.Error) {
	v, err := it.Eval(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		i, ok := coerceToInt(v)
		if !ok {
			return nil, brewerrors.New(brewerrors.TypeError, "operator '-' requires a numeric operand, got %s", v.Type())
		}
		return IntValue{Value: -i}, nil
	case "!":
		b, ok := IsTruthy(v)
		if !ok {
			return nil, brewerrors.New(brewerrors.TypeError, "operator '!' requires a bool/int operand, got %s", v.Type())
		}
		return BoolValue{Value: !b}, nil
	default:
		return nil, brewerrors.New(brewerrors.TypeError, "unknown unary operator %q", n.Op)
	}
}

// evalBinary evaluates both operands left-then-right (spec.md §9: no
// short-circuiting, fixed left-to-right evaluation order) and then applies
// the operator's coercion/overload rules.
func (it *Interpreter) evalBinary(n *ast.BinaryExpr) (Value, *brewerrors.Error) {
	left, err := it.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+":
		return evalPlus(left, right)
	case "-", "*", "/":
		return evalArith(n.Op, left, right)
	case "==":
		return BoolValue{Value: valuesEqual(left, right)}, nil
	case "!=":
		return BoolValue{Value: !valuesEqual(left, right)}, nil
	case "<", "<=", ">", ">=":
		return evalCompare(n.Op, left, right)
	case "&&", "||":
		return evalLogical(n.Op, left, right)
	default:
		return nil, brewerrors.New(brewerrors.TypeError, "unknown binary operator %q", n.Op)
	}
}

// evalPlus overloads '+' for Int+Int and Str+Str (concatenation); Bool
// operands coerce to Int the same as any other arithmetic operator.
func evalPlus(left, right Value) (Value, *brewerrors.Error) {
	ls, lIsStr := left.(StringValue)
	rs, rIsStr := right.(StringValue)
	if lIsStr || rIsStr {
		if !lIsStr || !rIsStr {
			return nil, brewerrors.New(brewerrors.TypeError, "cannot add %s and %s", left.Type(), right.Type())
		}
		return StringValue{Value: ls.Value + rs.Value}, nil
	}
	return evalArith("+", left, right)
}

func evalArith(op string, left, right Value) (Value, *brewerrors.Error) {
	li, lok := coerceToInt(left)
	ri, rok := coerceToInt(right)
	if !lok || !rok {
		return nil, brewerrors.New(brewerrors.TypeError, "operator %q requires numeric operands, got %s and %s", op, left.Type(), right.Type())
	}
	switch op {
	case "+":
		return IntValue{Value: li + ri}, nil
	case "-":
		return IntValue{Value: li - ri}, nil
	case "*":
		return IntValue{Value: li * ri}, nil
	case "/":
		if ri == 0 {
			// Open Question (spec.md §9): division by zero raises TYPE_ERROR
			// rather than crashing or producing a sentinel value.
			return nil, brewerrors.New(brewerrors.TypeError, "division by zero")
		}
		return IntValue{Value: li / ri}, nil
	default:
		return nil, brewerrors.New(brewerrors.TypeError, "unknown arithmetic operator %q", op)
	}
}

func evalCompare(op string, left, right Value) (Value, *brewerrors.Error) {
	li, lok := coerceToInt(left)
	ri, rok := coerceToInt(right)
	if !lok || !rok {
		return nil, brewerrors.New(brewerrors.TypeError, "operator %q requires numeric operands, got %s and %s", op, left.Type(), right.Type())
	}
	var result bool
	switch op {
	case "<":
		result = li < ri
	case "<=":
		result = li <= ri
	case ">":
		result = li > ri
	case ">=":
		result = li >= ri
	}
	return BoolValue{Value: result}, nil
}

// evalLogical applies no short-circuiting (spec.md §9 Open Question
// decision): both operands are always evaluated by the caller before this
// runs.
func evalLogical(op string, left, right Value) (Value, *brewerrors.Error) {
	lb, lok := IsTruthy(left)
	rb, rok := IsTruthy(right)
	if !lok || !rok {
		return nil, brewerrors.New(brewerrors.TypeError, "operator %q requires bool/int operands, got %s and %s", op, left.Type(), right.Type())
	}
	switch op {
	case "&&":
		return BoolValue{Value: lb && rb}, nil
	case "||":
		return BoolValue{Value: lb || rb}, nil
	default:
		return nil, brewerrors.New(brewerrors.TypeError, "unknown logical operator %q", op)
	}
}

// coerceToInt applies the Int/Bool -> Int coercion spec.md §3 describes for
// arithmetic and comparison operators.
func coerceToInt(v Value) (int64, bool) {
	switch vv := v.(type) {
	case IntValue:
		return vv.Value, true
	case BoolValue:
		if vv.Value {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// valuesEqual implements '==': Int/Int and Bool/Bool compare directly;
// a mixed Int/Bool pair coerces the Int side to Bool (spec.md §4.1: "if one
// side is Int and the other Bool, coerce the Int to Bool first"), matching
// interpreterv4.py's do_comparison rather than coercing Bool to Int. Object
// and Closure/FuncHandle values compare by identity.
func valuesEqual(left, right Value) bool {
	li, lIsInt := left.(IntValue)
	ri, rIsInt := right.(IntValue)
	lb, lIsBool := left.(BoolValue)
	rb, rIsBool := right.(BoolValue)

	switch {
	case lIsInt && rIsInt:
		return li.Value == ri.Value
	case lIsBool && rIsBool:
		return lb.Value == rb.Value
	case lIsInt && rIsBool:
		lt, _ := IsTruthy(li)
		return lt == rb.Value
	case lIsBool && rIsInt:
		rt, _ := IsTruthy(ri)
		return lb.Value == rt
	}
	if ls, lok := left.(StringValue); lok {
		rs, rok := right.(StringValue)
		return rok && ls.Value == rs.Value
	}
	if _, lok := left.(NilValue); lok {
		_, rok := right.(NilValue)
		return rok
	}
	if lo, lok := left.(*ObjectValue); lok {
		ro, rok := right.(*ObjectValue)
		return rok && lo == ro
	}
	if lc, lok := left.(*ClosureValue); lok {
		rc, rok := right.(*ClosureValue)
		return rok && lc == rc
	}
	if lf, lok := left.(*FuncHandleValue); lok {
		rf, rok := right.(*FuncHandleValue)
		return rok && lf.Node == rf.Node
	}
	return false
}
