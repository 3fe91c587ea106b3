package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlang/brew/internal/ast"
	"github.com/brewlang/brew/internal/lexer"
	"github.com/brewlang/brew/internal/parser"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(source))
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())
	return prog
}

func TestParseFunctionWithRefParam(t *testing.T) {
	prog := parseProgram(t, `func bump(ref x) { x = x + 1; }`)
	require.Len(t, prog.Functions, 1)

	fn := prog.Functions[0]
	assert.Equal(t, "bump", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, ast.Param{Name: "x", ByRef: true}, fn.Params[0])
	require.Len(t, fn.Body, 1)

	assign, ok := fn.Body[0].(*ast.AssignStatement)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Target)
}

func TestParseOverloadedArity(t *testing.T) {
	prog := parseProgram(t, `
func greet() { print("hi"); }
func greet(name) { print(name); }
`)
	require.Len(t, prog.Functions, 2)
	assert.Len(t, prog.Functions[0].Params, 0)
	assert.Len(t, prog.Functions[1].Params, 1)
}

func TestParseIfElseAndWhile(t *testing.T) {
	prog := parseProgram(t, `
func main() {
    if (x < 1) {
        return 1;
    } else {
        return 2;
    }
    while (x < 10) {
        x = x + 1;
    }
}
`)
	body := prog.Functions[0].Body
	require.Len(t, body, 2)

	ifStmt, ok := body[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.Len(t, ifStmt.Then, 1)
	assert.Len(t, ifStmt.Else, 1)

	whileStmt, ok := body[1].(*ast.WhileStatement)
	require.True(t, ok)
	assert.Len(t, whileStmt.Body, 1)
}

func TestParseMethodCallVsFuncCall(t *testing.T) {
	prog := parseProgram(t, `
func main() {
    obj.doThing(1, 2);
    doOther(3);
}
`)
	body := prog.Functions[0].Body
	require.Len(t, body, 2)

	methodStmt := body[0].(*ast.CallStatement)
	methodCall, ok := methodStmt.Call.(*ast.MethodCallExpr)
	require.True(t, ok)
	assert.Equal(t, "obj", methodCall.ObjRef)
	assert.Equal(t, "doThing", methodCall.Name)
	assert.Len(t, methodCall.Args, 2)

	funcStmt := body[1].(*ast.CallStatement)
	funcCall, ok := funcStmt.Call.(*ast.FuncCallExpr)
	require.True(t, ok)
	assert.Equal(t, "doOther", funcCall.Name)
}

func TestParseOperatorPrecedence(t *testing.T) {
	prog := parseProgram(t, `func main() { return 1 + 2 * 3 == 7 && !false; }`)
	ret := prog.Functions[0].Body[0].(*ast.ReturnStatement)

	top, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "&&", top.Op)

	eq, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "==", eq.Op)

	add, ok := eq.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op)

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op)
}

func TestParseLambdaAndObjectLiteral(t *testing.T) {
	prog := parseProgram(t, `
func main() {
    x = @;
    f = lambda(a, ref b) { return a; };
}
`)
	body := prog.Functions[0].Body
	require.Len(t, body, 2)

	assign1 := body[0].(*ast.AssignStatement)
	_, ok := assign1.Value.(*ast.ObjectExpr)
	require.True(t, ok)

	assign2 := body[1].(*ast.AssignStatement)
	lambda, ok := assign2.Value.(*ast.LambdaExpr)
	require.True(t, ok)
	require.Len(t, lambda.Params, 2)
	assert.False(t, lambda.Params[0].ByRef)
	assert.True(t, lambda.Params[1].ByRef)
}

func TestParseErrorOnMissingBrace(t *testing.T) {
	p := parser.New(lexer.New(`func main() { return 1; `))
	p.ParseProgram()
	assert.NotEmpty(t, p.Errors())
}
