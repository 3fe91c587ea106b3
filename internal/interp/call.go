package interp

import (
	"github.com/brewlang/brew/internal/ast"
	brewerrors "github.com/brewlang/brew/internal/errors"
)

// evalFuncCall resolves n.Name either as a local variable holding a Closure
// or FuncHandle, or — failing that — as a top-level function overloaded by
// arity. Grounded on original_source/Brewin/interpreterv4.py's
// do_func_call, which performs exactly this variable-then-arity-table
// fallback.
func (it *Interpreter) evalFuncCall(n *ast.FuncCallExpr) (Value, *brewerrors.Error) {
	if v, ok := it.env.Lookup(n.Name, it.lambdaFloor); ok {
		return it.invokeValue(v, n.Args)
	}
	if fn, ok := builtins[n.Name]; ok {
		return it.callBuiltin(fn, n.Args)
	}
	fnDecl, ok := it.lookupFunction(n.Name, len(n.Args))
	if !ok {
		return nil, brewerrors.New(brewerrors.NameError, "undefined function %s/%d", n.Name, len(n.Args))
	}
	return it.callDecl(fnDecl, n.Args, nil)
}

// evalMethodCall resolves n.ObjRef to an object, looks up n.Name on its
// prototype chain, and invokes it with "this" rebound to that object —
// spec.md §4.5's implicit-receiver rule.
func (it *Interpreter) evalMethodCall(n *ast.MethodCallExpr) (Value, *brewerrors.Error) {
	recv, err := it.resolveHead(n.ObjRef)
	if err != nil {
		return nil, err
	}
	obj, ok := recv.(*ObjectValue)
	if !ok {
		return nil, brewerrors.New(brewerrors.TypeError, "cannot call method %q on non-object value", n.Name)
	}
	method, ok := lookupMember(obj, n.Name)
	if !ok {
		return nil, brewerrors.New(brewerrors.NameError, "object has no method %q", n.Name)
	}
	return it.invokeValueOn(method, n.Args, obj)
}

func (it *Interpreter) invokeValue(v Value, argExprs []ast.Expression) (Value, *brewerrors.Error) {
	return it.invokeValueOn(v, argExprs, nil)
}

func (it *Interpreter) invokeValueOn(v Value, argExprs []ast.Expression, receiver *ObjectValue) (Value, *brewerrors.Error) {
	switch vv := v.(type) {
	case *ClosureValue:
		return it.callClosure(vv, argExprs, receiver)
	case *FuncHandleValue:
		return it.callDecl(vv.Node, argExprs, receiver)
	default:
		return nil, brewerrors.New(brewerrors.TypeError, "value of type %s is not callable", v.Type())
	}
}

// refBinding records that param.Name was bound from a by-reference argument
// naming actual in the caller's scope, so the call can write the formal
// parameter's final value back into actual at call exit (spec.md §4.3's
// third bullet, §4.5 step 6).
type refBinding struct {
	formal string
	actual string
}

// bindParams evaluates argExprs against decl's parameter list, producing a
// fresh Frame, an AliasTable recording which parameter names are aliases
// of which caller-side variable names (spec.md §4.3/§4.5), and the list of
// by-reference formal/actual pairs for call-exit writeback: by-value
// arguments are deep-copied in; by-reference arguments must be a plain
// (undotted) variable reference, and are linked into the alias graph so
// writes to either name propagate to the other during the call.
func (it *Interpreter) bindParams(params []ast.Param, argExprs []ast.Expression) (*Frame, *AliasTable, []refBinding, *brewerrors.Error) {
	if len(params) != len(argExprs) {
		return nil, nil, nil, brewerrors.New(brewerrors.TypeError, "expected %d argument(s), got %d", len(params), len(argExprs))
	}

	frame := NewFrame()
	aliases := NewAliasTable()
	var refs []refBinding

	for i, param := range params {
		if param.ByRef {
			varExpr, ok := argExprs[i].(*ast.VarExpr)
			if !ok || containsDot(varExpr.Name) {
				return nil, nil, nil, brewerrors.New(brewerrors.TypeError, "reference parameter %q requires a plain variable argument", param.Name)
			}
			val, err := it.Eval(varExpr)
			if err != nil {
				return nil, nil, nil, err
			}
			frame.Define(param.Name, val)
			aliases.AddEdge(param.Name, varExpr.Name)
			refs = append(refs, refBinding{formal: param.Name, actual: varExpr.Name})
			continue
		}

		val, err := it.Eval(argExprs[i])
		if err != nil {
			return nil, nil, nil, err
		}
		frame.Define(param.Name, DeepCopy(val))
	}

	return frame, aliases, refs, nil
}

// writebackRefs writes each binding's final formal-parameter value into its
// caller-side actual name, using the same lambda-floor-aware search as any
// other assignment. Grounded on interpreterv4.py's run_func (lines 549-561),
// which performs this formal-to-actual writeback on every call exit, on top
// of the assignment-time propagation execAssign already performs.
func (it *Interpreter) writebackRefs(refs []refBinding, frame *Frame, lambdaFloor int) {
	for _, r := range refs {
		if v, ok := frame.Get(r.formal); ok {
			it.env.Assign(r.actual, v, lambdaFloor)
		}
	}
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

// callDecl invokes a plain top-level function (or a FuncHandle value). A
// plain call resets the lambda floor to zero and masks any outer "this" —
// only method dispatch and lambda capture thread a receiver or floor
// through.
func (it *Interpreter) callDecl(decl *ast.FunctionDecl, argExprs []ast.Expression, receiver *ObjectValue) (Value, *brewerrors.Error) {
	frame, aliases, refs, err := it.bindParams(decl.Params, argExprs)
	if err != nil {
		return nil, err
	}

	it.env.PushFrame(frame)
	it.pushAliases(aliases)
	it.pushReceiver(receiver)
	savedFloor := it.lambdaFloor
	it.lambdaFloor = 0

	sig, val, err := it.execBlock(decl.Body)

	it.popReceiver()
	it.popAliases()
	it.env.Pop()
	it.writebackRefs(refs, frame, it.lambdaFloor)
	it.lambdaFloor = savedFloor

	if err != nil {
		return nil, err
	}
	if sig != sigReturn {
		return NilValue{}, nil
	}
	return val, nil
}

// callClosure invokes a lambda. Its captured frames are spliced onto the
// live environment below a fresh parameter frame. While the arguments are
// evaluated and while by-reference arguments are written back, the lambda
// floor is the stack depth as it stood before splicing, so those caller-side
// names resolve against the caller's frames first (spec.md §4.2's
// lambda-floor rule). The body runs with a floor of zero, so lookups and
// alias writebacks inside it search the closure's own param+captured frames
// before falling through to the caller's active scopes. After the body runs,
// the (possibly mutated) captured frames are written back into the ClosureValue so a later call to
// the same closure observes state changes from this one — the mechanism
// behind a lambda closing over and mutating a counter.
func (it *Interpreter) callClosure(c *ClosureValue, argExprs []ast.Expression, receiver *ObjectValue) (Value, *brewerrors.Error) {
	floor := it.env.Depth()

	for _, f := range c.Captured {
		it.env.PushFrame(f)
	}

	// The new floor must be in effect while arguments are evaluated:
	// otherwise a name that exists both in the caller's
	// live scope and in this closure's own captured scope would resolve
	// against the just-spliced captured frames (which sit above floor)
	// instead of the caller's frames (below floor), per
	// interpreterv4.py's run_lambda_func/run_func threading the new floor
	// into argument evaluation itself.
	savedFloor := it.lambdaFloor
	it.lambdaFloor = floor

	frame, aliases, refs, err := it.bindParams(c.Node.Params, argExprs)
	if err != nil {
		it.lambdaFloor = savedFloor
		it.env.Truncate(floor)
		return nil, err
	}

	it.env.PushFrame(frame)
	it.pushAliases(aliases)
	it.pushReceiver(receiver)
	it.lambdaFloor = 0

	sig, val, execErr := it.execBlock(c.Node.Body)

	it.popReceiver()
	it.popAliases()
	it.env.Pop() // drop the parameter frame
	it.writebackRefs(refs, frame, floor)

	it.lambdaFloor = savedFloor

	c.Captured = it.env.Truncate(floor)

	if execErr != nil {
		return nil, execErr
	}
	if sig != sigReturn {
		return NilValue{}, nil
	}
	return val, nil
}
