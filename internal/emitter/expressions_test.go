package emitter

import (
	"testing"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

func TestLowerNumericLiteralIntVsDouble(t *testing.T) {
	intLit := &ir.NumericLiteral{Raw: "3", Value: 3}
	intLit.Type = &ir.PrimitiveType{Name: ir.PrimInt}
	if got := lowerNumericLiteral(intLit); got != "3" {
		t.Errorf("lowerNumericLiteral(int 3) = %q, want %q", got, "3")
	}

	numLit := &ir.NumericLiteral{Raw: "3", Value: 3}
	numLit.Type = &ir.PrimitiveType{Name: ir.PrimNumber}
	if got := lowerNumericLiteral(numLit); got != "3d" {
		t.Errorf("lowerNumericLiteral(number 3) = %q, want %q (suffixed, marked whole)", got, "3d")
	}

	frac := &ir.NumericLiteral{Raw: "1.5", Value: 1.5}
	frac.Type = &ir.PrimitiveType{Name: ir.PrimNumber}
	if got := lowerNumericLiteral(frac); got != "1.5d" {
		t.Errorf("lowerNumericLiteral(number 1.5) = %q, want %q", got, "1.5d")
	}
}

func TestQuoteStringLiteralEscapesControlCharsAndQuotes(t *testing.T) {
	got := quoteStringLiteral("a\"b\\c\nd\te")
	want := `"a\"b\\c\nd\te"`
	if got != want {
		t.Errorf("quoteStringLiteral() = %q, want %q", got, want)
	}
}

func TestLowerCallExpressionPlainInvocation(t *testing.T) {
	ctx := freshContext()
	n := &ir.CallExpression{Callee: &ir.Identifier{Name: "f"}, Arguments: []ir.Expression{&ir.Identifier{Name: "x"}}}
	got, _ := lowerCallExpression(ctx, n)
	inv, ok := got.(*csharpast.Invocation)
	if !ok || len(inv.Arguments) != 1 {
		t.Fatalf("lowerCallExpression() = %#v, want Invocation with 1 argument", got)
	}
}

// TestLowerCallExpressionOptionalMemberCallUsesConditionalMemberAccess
// exercises spec.md §4.3's optional-chain call rule: `recv?.method()` lowers
// to a conditional MemberAccess, not a conditional Invocation wrapping a
// plain member access.
func TestLowerCallExpressionOptionalMemberCallUsesConditionalMemberAccess(t *testing.T) {
	ctx := freshContext()
	n := &ir.CallExpression{
		Callee:   &ir.MemberAccess{Object: &ir.Identifier{Name: "recv"}, Property: "method"},
		Optional: true,
	}
	got, _ := lowerCallExpression(ctx, n)
	inv, ok := got.(*csharpast.Invocation)
	if !ok {
		t.Fatalf("lowerCallExpression() = %T, want *csharpast.Invocation", got)
	}
	member, ok := inv.Callee.(*csharpast.MemberAccess)
	if !ok || member.Name != "method" || !member.Conditional {
		t.Fatalf("inv.Callee = %#v, want conditional MemberAccess{Name: method}", inv.Callee)
	}
}

// TestLowerCallExpressionOptionalBareCalleeUsesInvoke exercises the other
// optional-chain call shape: calling a bare (non-member) value optionally
// lowers through `callee?.Invoke(args)`.
func TestLowerCallExpressionOptionalBareCalleeUsesInvoke(t *testing.T) {
	ctx := freshContext()
	n := &ir.CallExpression{Callee: &ir.Identifier{Name: "cb"}, Optional: true}
	got, _ := lowerCallExpression(ctx, n)
	inv := got.(*csharpast.Invocation)
	member, ok := inv.Callee.(*csharpast.MemberAccess)
	if !ok || member.Name != "Invoke" || !member.Conditional {
		t.Fatalf("inv.Callee = %#v, want conditional MemberAccess{Name: Invoke}", inv.Callee)
	}
}

func TestLowerArgumentListSpreadUsesArrayHelpersSpread(t *testing.T) {
	ctx := freshContext()
	args := []ir.Expression{
		&ir.Identifier{Name: "a"},
		&ir.SpreadElement{Argument: &ir.Identifier{Name: "rest"}},
	}
	out, _ := lowerArgumentList(ctx, args)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	inv, ok := out[1].(*csharpast.Invocation)
	if !ok {
		t.Fatalf("out[1] = %T, want *csharpast.Invocation", out[1])
	}
	member, ok := inv.Callee.(*csharpast.MemberAccess)
	if !ok || member.Name != "Spread" {
		t.Fatalf("inv.Callee = %#v, want MemberAccess{Name: Spread}", inv.Callee)
	}
}

func TestLowerBinaryExpressionInstanceOf(t *testing.T) {
	ctx := freshContext()
	n := &ir.BinaryExpression{Operator: ir.OpInstanceOf, Left: &ir.Identifier{Name: "v"}, Right: &ir.Identifier{Name: "Foo"}}
	got, _ := lowerBinaryExpression(ctx, n)
	is, ok := got.(*csharpast.Is)
	if !ok {
		t.Fatalf("lowerBinaryExpression(instanceof) = %T, want *csharpast.Is", got)
	}
	pat, ok := is.Pattern.(*csharpast.TypePattern)
	if !ok {
		t.Fatalf("is.Pattern = %T, want *csharpast.TypePattern", is.Pattern)
	}
	id, ok := pat.Type.(*csharpast.IdentifierType)
	if !ok || id.Name != "Foo" {
		t.Fatalf("pat.Type = %#v, want IdentifierType{Foo}", pat.Type)
	}
}

func TestLowerBinaryExpressionInUsesObjectHelpersHasProperty(t *testing.T) {
	ctx := freshContext()
	n := &ir.BinaryExpression{Operator: ir.OpIn, Left: &ir.Identifier{Name: "key"}, Right: &ir.Identifier{Name: "obj"}}
	got, _ := lowerBinaryExpression(ctx, n)
	inv, ok := got.(*csharpast.Invocation)
	if !ok {
		t.Fatalf("lowerBinaryExpression(in) = %T, want *csharpast.Invocation", got)
	}
	member, ok := inv.Callee.(*csharpast.MemberAccess)
	if !ok || member.Name != "HasProperty" {
		t.Fatalf("inv.Callee = %#v, want MemberAccess{Name: HasProperty}", inv.Callee)
	}
	if len(inv.Arguments) != 2 {
		t.Fatalf("len(inv.Arguments) = %d, want 2 (obj, key)", len(inv.Arguments))
	}
}

func TestLowerBinaryExpressionArithmeticMapsOperator(t *testing.T) {
	ctx := freshContext()
	n := &ir.BinaryExpression{Operator: ir.OpAdd, Left: &ir.Identifier{Name: "a"}, Right: &ir.Identifier{Name: "b"}}
	got, _ := lowerBinaryExpression(ctx, n)
	bin, ok := got.(*csharpast.Binary)
	if !ok || bin.Operator != "+" {
		t.Fatalf("lowerBinaryExpression(+) = %#v, want Binary{+}", got)
	}
}

func TestLowerArrayLiteralEmptyWithContextTypeUsesElementType(t *testing.T) {
	ctx := freshContext()
	n := &ir.ArrayLiteral{ContextType: &ir.ArrayType{Element: &ir.PrimitiveType{Name: ir.PrimString}}}
	got, _ := lowerArrayLiteral(ctx, n)
	creation, ok := got.(*csharpast.ArrayCreation)
	if !ok {
		t.Fatalf("lowerArrayLiteral() = %T, want *csharpast.ArrayCreation", got)
	}
	pt, ok := creation.ElementType.(*csharpast.PredefinedType)
	if !ok || pt.Name != csharpast.PredefString {
		t.Fatalf("creation.ElementType = %#v, want PredefinedType{string}", creation.ElementType)
	}
}

func TestLowerArrayLiteralNoContextInfersFromFirstElement(t *testing.T) {
	ctx := freshContext()
	first := &ir.NumericLiteral{Raw: "1", Value: 1}
	first.Type = &ir.PrimitiveType{Name: ir.PrimNumber}
	n := &ir.ArrayLiteral{Elements: []ir.Expression{first}}
	got, _ := lowerArrayLiteral(ctx, n)
	creation := got.(*csharpast.ArrayCreation)
	pt, ok := creation.ElementType.(*csharpast.PredefinedType)
	if !ok || pt.Name != csharpast.PredefDouble {
		t.Fatalf("creation.ElementType = %#v, want PredefinedType{double} (inferred from first element)", creation.ElementType)
	}
}

func TestLowerAssignmentExpressionPlainTarget(t *testing.T) {
	ctx := freshContext()
	n := &ir.AssignmentExpression{Target: &ir.Identifier{Name: "x"}, Value: &ir.Identifier{Name: "y"}, Operator: "="}
	got, _ := lowerAssignmentExpression(ctx, n)
	asg, ok := got.(*csharpast.Assignment)
	if !ok || asg.Operator != "=" {
		t.Fatalf("lowerAssignmentExpression() = %#v, want Assignment{=}", got)
	}
}

func TestLowerAssignmentExpressionPatternTargetUsesDestructure(t *testing.T) {
	ctx := freshContext()
	n := &ir.AssignmentExpression{
		PatternTarget: &ir.ArrayPattern{Elements: []ir.ArrayPatternElement{{Pattern: &ir.IdentifierPattern{Name: "a"}}}},
		Value:         &ir.Identifier{Name: "src"},
		Operator:      "=",
	}
	got, _ := lowerAssignmentExpression(ctx, n)
	if _, ok := got.(*csharpast.Invocation); !ok {
		t.Fatalf("lowerAssignmentExpression(pattern target) = %T, want *csharpast.Invocation (IIFE from LowerAssignmentDestructure)", got)
	}
}
