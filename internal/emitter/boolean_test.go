package emitter

import (
	"strings"
	"testing"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
	"github.com/tsonic-lang/backend/pkg/csprinter"
)

func printExpr(t *testing.T, e csharpast.Expression) string {
	t.Helper()
	s, err := csprinter.PrintExpression(e)
	if err != nil {
		t.Fatalf("PrintExpression() error = %v", err)
	}
	return s
}

func numberIdent(name string) *ir.Identifier {
	e := &ir.Identifier{Name: name}
	e.Type = &ir.PrimitiveType{Name: ir.PrimNumber}
	return e
}

// TestLowerBooleanContextNumberBindsPatternVariableOnce is scenario #4 of
// spec.md §8: a statically `number`-typed operand must bind to a single `is
// double` pattern variable, never appearing twice in the emitted text.
func TestLowerBooleanContextNumberBindsPatternVariableOnce(t *testing.T) {
	ctx := freshContext()
	e := numberIdent("x")
	got, _ := LowerBooleanContext(ctx, e)

	text := printExpr(t, got)
	if strings.Count(text, "x") != 1 {
		t.Fatalf("operand %q appears %d times in %q, want exactly once", "x", strings.Count(text, "x"), text)
	}
	if !strings.Contains(text, "is double") {
		t.Errorf("expected an `is double` pattern match in %q", text)
	}
	if !strings.Contains(text, "!double.IsNaN(") {
		t.Errorf("expected a double.IsNaN guard in %q", text)
	}
}

func TestLowerBooleanContextNumberTempsAreDistinctAcrossCalls(t *testing.T) {
	ctx := freshContext()
	first, ctx2 := LowerBooleanContext(ctx, numberIdent("a"))
	second, _ := LowerBooleanContext(ctx2, numberIdent("b"))

	firstText := printExpr(t, first)
	secondText := printExpr(t, second)
	if firstText == secondText {
		t.Fatalf("expected distinct pattern-variable names across two allocations, got %q twice", firstText)
	}
	if !strings.Contains(firstText, "__tsonic_truthy_num_1") {
		t.Errorf("first = %q, want __tsonic_truthy_num_1", firstText)
	}
	if !strings.Contains(secondText, "__tsonic_truthy_num_2") {
		t.Errorf("second = %q, want __tsonic_truthy_num_2", secondText)
	}
}

func TestLowerBooleanContextConstantFolding(t *testing.T) {
	ctx := freshContext()
	lit := &ir.BooleanLiteral{Value: true}
	got, _ := LowerBooleanContext(ctx, lit)
	if text := printExpr(t, got); text != "true" {
		t.Errorf("LowerBooleanContext(true literal) = %q, want %q", text, "true")
	}
}

func TestLowerBooleanContextAlreadyBooleanComparisonPassesThrough(t *testing.T) {
	ctx := freshContext()
	left := &ir.Identifier{Name: "a"}
	right := &ir.Identifier{Name: "b"}
	cmp := &ir.BinaryExpression{Operator: ir.OpLt, Left: left, Right: right}
	got, _ := LowerBooleanContext(ctx, cmp)
	if _, ok := got.(*csharpast.Binary); !ok {
		t.Fatalf("LowerBooleanContext(a < b) = %T, want *csharpast.Binary passthrough", got)
	}
}

func TestLowerBooleanContextStringTruthiness(t *testing.T) {
	ctx := freshContext()
	e := &ir.Identifier{Name: "s"}
	e.Type = &ir.PrimitiveType{Name: ir.PrimString}
	got, _ := LowerBooleanContext(ctx, e)
	text := printExpr(t, got)
	if !strings.Contains(text, "string.IsNullOrEmpty(s)") {
		t.Errorf("got %q, want a string.IsNullOrEmpty(s) guard", text)
	}
}

func TestLowerBooleanContextUntypedFallsBackToRuntimeSwitch(t *testing.T) {
	ctx := freshContext()
	e := &ir.Identifier{Name: "v"}
	got, _ := LowerBooleanContext(ctx, e)
	if _, ok := got.(*csharpast.SwitchExpression); !ok {
		t.Fatalf("LowerBooleanContext(untyped) = %T, want *csharpast.SwitchExpression", got)
	}
}

// TestLowerBooleanContextLiteralUnionArmsUseBasePrimitiveTruthiness exercises
// the literal-arm collapsing rule (spec.md §4.2/§4.5 rule 4) end-to-end
// through LowerBooleanContext: a union of number-literal arms truthiness
// tests exactly like a plain `number`, not the >1-arm runtime dispatch.
func TestLowerBooleanContextLiteralUnionArmsUseBasePrimitiveTruthiness(t *testing.T) {
	ctx := freshContext()
	e := &ir.Identifier{Name: "code"}
	e.Type = &ir.UnionType{Arms: []ir.Type{
		&ir.LiteralType{Base: ir.PrimNumber, Raw: "1"},
		&ir.LiteralType{Base: ir.PrimNumber, Raw: "2"},
	}}
	got, _ := LowerBooleanContext(ctx, e)
	text := printExpr(t, got)
	if !strings.Contains(text, "is double") {
		t.Errorf("got %q, want the number-truthiness pattern match", text)
	}
	if strings.Contains(text, "Is1") || strings.Contains(text, "Is2") {
		t.Errorf("got %q, did not expect a multi-arm union dispatch", text)
	}
}

func TestLowerBooleanContextSingleNonNullishUnionArmUsesIsPattern(t *testing.T) {
	ctx := freshContext()
	e := &ir.Identifier{Name: "v"}
	e.Type = &ir.UnionType{Arms: []ir.Type{
		&ir.PrimitiveType{Name: ir.PrimString},
		&ir.PrimitiveType{Name: ir.PrimNull},
	}}
	got, _ := LowerBooleanContext(ctx, e)
	text := printExpr(t, got)
	if !strings.Contains(text, "is string") {
		t.Errorf("got %q, want an `is string` pattern match", text)
	}
	if !strings.Contains(text, "IsNullOrEmpty") {
		t.Errorf("got %q, want the string-truthiness rule applied to the matched variant", text)
	}
}
