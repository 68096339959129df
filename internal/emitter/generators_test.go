package emitter

import (
	"testing"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// TestBuildThrowMethodRethrowsViaToString is a regression test for the
// rethrow branch of the generator wrapper's Throw method: e is statically
// `object` (spec.md §4.6 — Throw takes object, not Exception), so the
// non-Exception branch must call e.ToString(), never the non-existent
// e.Message member.
func TestBuildThrowMethodRethrowsViaToString(t *testing.T) {
	resultType := &csharpast.IdentifierType{Name: runtimeNamespace + ".IteratorResult"}
	method := buildThrowMethod(resultType, false)

	var rethrow *csharpast.If
	for _, s := range method.Body.Statements {
		if ifStmt, ok := s.(*csharpast.If); ok {
			rethrow = ifStmt
		}
	}
	if rethrow == nil {
		t.Fatalf("Throw body = %#v, want an If statement choosing rethrow vs wrap", method.Body.Statements)
	}

	elseBlock, ok := rethrow.Else.(*csharpast.Block)
	if !ok || len(elseBlock.Statements) != 1 {
		t.Fatalf("rethrow.Else = %#v, want a single-statement block", rethrow.Else)
	}
	throwStmt, ok := elseBlock.Statements[0].(*csharpast.ThrowStatement)
	if !ok {
		t.Fatalf("elseBlock.Statements[0] = %T, want *csharpast.ThrowStatement", elseBlock.Statements[0])
	}
	creation, ok := throwStmt.Argument.(*csharpast.ObjectCreation)
	if !ok || len(creation.Arguments) != 1 {
		t.Fatalf("throwStmt.Argument = %#v, want ObjectCreation with 1 argument", throwStmt.Argument)
	}
	bin, ok := creation.Arguments[0].(*csharpast.Binary)
	if !ok || bin.Operator != "??" {
		t.Fatalf("creation.Arguments[0] = %#v, want Binary{??}", creation.Arguments[0])
	}
	inv, ok := bin.Left.(*csharpast.Invocation)
	if !ok {
		t.Fatalf("bin.Left = %T, want *csharpast.Invocation (e.ToString())", bin.Left)
	}
	member, ok := inv.Callee.(*csharpast.MemberAccess)
	if !ok || member.Name != "ToString" {
		t.Fatalf("inv.Callee = %#v, want MemberAccess{Name: ToString}", inv.Callee)
	}
	if recv, ok := member.Receiver.(*csharpast.Identifier); !ok || recv.Name != "e" {
		t.Fatalf("member.Receiver = %#v, want Identifier{e}", member.Receiver)
	}
}

func TestBuildThrowMethodReturnsDoneResultAfterRethrowBranch(t *testing.T) {
	resultType := &csharpast.IdentifierType{Name: "Result"}
	method := buildThrowMethod(resultType, false)
	last := method.Body.Statements[len(method.Body.Statements)-1]
	ret, ok := last.(*csharpast.Return)
	if !ok {
		t.Fatalf("last statement = %T, want *csharpast.Return", last)
	}
	creation, ok := ret.Argument.(*csharpast.ObjectCreation)
	if !ok {
		t.Fatalf("ret.Argument = %T, want *csharpast.ObjectCreation", ret.Argument)
	}
	foundDone := false
	for _, m := range creation.Initializers {
		if m.Name == "Done" {
			if lit, ok := m.Value.(*csharpast.Literal); ok && lit.Text == "true" {
				foundDone = true
			}
		}
	}
	if !foundDone {
		t.Errorf("Initializers = %#v, want Done: true", creation.Initializers)
	}
}

func TestBuildNextMethodNameIsMoveNextAsyncWhenAsync(t *testing.T) {
	resultType := &csharpast.IdentifierType{Name: "Result"}
	method := buildNextMethod(resultType, true)
	ifStmt, ok := method.Body.Statements[3].(*csharpast.If)
	if !ok {
		t.Fatalf("Statements[3] = %T, want *csharpast.If", method.Body.Statements[3])
	}
	await, ok := ifStmt.Test.(*csharpast.Await)
	if !ok {
		t.Fatalf("ifStmt.Test = %T, want *csharpast.Await", ifStmt.Test)
	}
	inv, ok := await.Operand.(*csharpast.Invocation)
	if !ok {
		t.Fatalf("await.Operand = %T, want *csharpast.Invocation", await.Operand)
	}
	member := inv.Callee.(*csharpast.MemberAccess)
	if member.Name != "MoveNextAsync" {
		t.Errorf("member.Name = %q, want MoveNextAsync", member.Name)
	}
}

func TestBuildReturnMethodUsesDisposeAsyncWhenAsync(t *testing.T) {
	resultType := &csharpast.IdentifierType{Name: "Result"}
	method := buildReturnMethod(resultType, true)
	exprStmt, ok := method.Body.Statements[1].(*csharpast.ExpressionStatement)
	if !ok {
		t.Fatalf("Statements[1] = %T, want *csharpast.ExpressionStatement", method.Body.Statements[1])
	}
	await, ok := exprStmt.Expr.(*csharpast.Await)
	if !ok {
		t.Fatalf("exprStmt.Expr = %T, want *csharpast.Await", exprStmt.Expr)
	}
	inv := await.Operand.(*csharpast.Invocation)
	member := inv.Callee.(*csharpast.MemberAccess)
	if member.Name != "DisposeAsync" {
		t.Errorf("member.Name = %q, want DisposeAsync", member.Name)
	}
}

// TestLowerYieldStatementPlainEmitsExchangeProtocol checks `yield v;`
// lowers to the Output-assign-then-YieldReturn pair spec.md §4.6 requires.
func TestLowerYieldStatementPlainEmitsExchangeProtocol(t *testing.T) {
	ctx := freshContext()
	ctx.GeneratorExchangeVar = "exchange"
	y := &ir.YieldExpression{Argument: &ir.NumericLiteral{Raw: "1", Value: 1}}

	stmts, _, ok := lowerYieldStatement(ctx, y)
	if !ok {
		t.Fatalf("lowerYieldStatement() ok = false, want true")
	}
	if len(stmts) != 2 {
		t.Fatalf("len(stmts) = %d, want 2", len(stmts))
	}
	assign, ok := stmts[0].(*csharpast.ExpressionStatement)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *csharpast.ExpressionStatement", stmts[0])
	}
	asg, ok := assign.Expr.(*csharpast.Assignment)
	if !ok {
		t.Fatalf("assign.Expr = %T, want *csharpast.Assignment", assign.Expr)
	}
	member, ok := asg.Target.(*csharpast.MemberAccess)
	if !ok || member.Name != "Output" {
		t.Fatalf("asg.Target = %#v, want MemberAccess{Name: Output}", asg.Target)
	}
	if _, ok := stmts[1].(*csharpast.YieldReturn); !ok {
		t.Fatalf("stmts[1] = %T, want *csharpast.YieldReturn", stmts[1])
	}
}

// TestLowerYieldStatementDelegateForwardsInnerIterator checks `yield* e;`
// lowers to a foreach loop forwarding each inner item's Output.
func TestLowerYieldStatementDelegateForwardsInnerIterator(t *testing.T) {
	ctx := freshContext()
	ctx.GeneratorExchangeVar = "exchange"
	y := &ir.YieldExpression{Argument: &ir.Identifier{Name: "inner"}, Delegate: true}

	stmts, _, ok := lowerYieldStatement(ctx, y)
	if !ok || len(stmts) != 1 {
		t.Fatalf("lowerYieldStatement() = %v, %v, want 1 stmt, ok=true", stmts, ok)
	}
	forward, ok := stmts[0].(*csharpast.Foreach)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *csharpast.Foreach", stmts[0])
	}
	if len(forward.Body.Statements) != 2 {
		t.Fatalf("len(forward.Body.Statements) = %d, want 2", len(forward.Body.Statements))
	}
	if _, ok := forward.Body.Statements[1].(*csharpast.YieldReturn); !ok {
		t.Fatalf("forward.Body.Statements[1] = %T, want *csharpast.YieldReturn", forward.Body.Statements[1])
	}
}

func TestLowerYieldStatementNotAYieldReturnsFalse(t *testing.T) {
	ctx := freshContext()
	ctx.GeneratorExchangeVar = "exchange"
	_, _, ok := lowerYieldStatement(ctx, &ir.Identifier{Name: "x"})
	if ok {
		t.Fatalf("lowerYieldStatement(non-yield) ok = true, want false")
	}
}

// TestLowerGeneratorYieldOutsideGeneratorPanics checks the ICE guard: a
// yield expression reached with no generator exchange variable bound is a
// frontend contract violation, not a silently-ignored no-op.
func TestLowerGeneratorYieldOutsideGeneratorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("lowerGeneratorYield outside a generator body did not panic")
		}
	}()
	ctx := freshContext()
	lowerGeneratorYield(ctx, &ir.YieldExpression{})
}
