package emitter

import (
	"testing"

	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// TestLowerLocalDestructureArrayPatternWithRest exercises spec.md §4.4's
// array-pattern local declaration rule end-to-end: `[a, , ...rest]` lowers
// to a temp holding the whole rhs, one declarator per named element (the
// hole is skipped), and a rest declarator built from ArrayHelpers.Slice.
func TestLowerLocalDestructureArrayPatternWithRest(t *testing.T) {
	ctx := freshContext()
	pattern := &ir.ArrayPattern{
		Elements: []ir.ArrayPatternElement{
			{Pattern: &ir.IdentifierPattern{Name: "a"}},
			{}, // hole
		},
		Rest: &ir.IdentifierPattern{Name: "rest"},
	}
	declType := &ir.ArrayType{Element: &ir.PrimitiveType{Name: ir.PrimNumber}}
	rhs := &csharpast.Identifier{Name: "src"}

	stmts, _ := LowerLocalDestructure(ctx, pattern, declType, rhs)
	if len(stmts) != 3 {
		t.Fatalf("len(stmts) = %d, want 3 (temp + a + rest)", len(stmts))
	}

	temp, ok := stmts[0].(*csharpast.LocalDeclaration)
	if !ok || temp.Name != "__arr0" {
		t.Fatalf("stmts[0] = %#v, want temp __arr0", stmts[0])
	}
	if _, ok := temp.Type.(csharpast.VarType); !ok {
		t.Errorf("temp.Type = %#v, want VarType", temp.Type)
	}

	aDecl, ok := stmts[1].(*csharpast.LocalDeclaration)
	if !ok || aDecl.Name != "a" {
		t.Fatalf("stmts[1] = %#v, want declarator named a", stmts[1])
	}
	access, ok := aDecl.Init.(*csharpast.ElementAccess)
	if !ok {
		t.Fatalf("aDecl.Init = %T, want *csharpast.ElementAccess", aDecl.Init)
	}
	if recv, ok := access.Receiver.(*csharpast.Identifier); !ok || recv.Name != "__arr0" {
		t.Errorf("access.Receiver = %#v, want __arr0", access.Receiver)
	}
	if idx, ok := access.Index.(*csharpast.Literal); !ok || idx.Text != "0" {
		t.Errorf("access.Index = %#v, want literal 0 (hole at index 1 must still be skipped)", access.Index)
	}

	restDecl, ok := stmts[2].(*csharpast.LocalDeclaration)
	if !ok || restDecl.Name != "rest" {
		t.Fatalf("stmts[2] = %#v, want declarator named rest", stmts[2])
	}
	restType, ok := restDecl.Type.(*csharpast.ArrayType)
	if !ok || restType.Rank != 1 {
		t.Fatalf("restDecl.Type = %#v, want ArrayType rank 1", restDecl.Type)
	}
	slice, ok := restDecl.Init.(*csharpast.Invocation)
	if !ok {
		t.Fatalf("restDecl.Init = %T, want *csharpast.Invocation", restDecl.Init)
	}
	callee, ok := slice.Callee.(*csharpast.MemberAccess)
	if !ok || callee.Name != "Slice" {
		t.Fatalf("slice.Callee = %#v, want MemberAccess{Name: Slice}", slice.Callee)
	}
	if len(slice.Arguments) != 2 {
		t.Fatalf("len(slice.Arguments) = %d, want 2", len(slice.Arguments))
	}
	if idx, ok := slice.Arguments[1].(*csharpast.Literal); !ok || idx.Text != "2" {
		t.Errorf("slice start index = %#v, want literal 2 (2 elements, including the hole, precede the rest)", slice.Arguments[1])
	}
}

// TestLowerLocalDestructureArrayPatternDefaultUsesNullCoalesce checks a
// missing-element default is wired through `??`.
func TestLowerLocalDestructureArrayPatternDefaultUsesNullCoalesce(t *testing.T) {
	ctx := freshContext()
	pattern := &ir.ArrayPattern{
		Elements: []ir.ArrayPatternElement{
			{Pattern: &ir.IdentifierPattern{Name: "a"}, Default: &ir.NumericLiteral{Raw: "0", Value: 0}},
		},
	}
	stmts, _ := LowerLocalDestructure(ctx, pattern, nil, &csharpast.Identifier{Name: "src"})
	if len(stmts) != 2 {
		t.Fatalf("len(stmts) = %d, want 2", len(stmts))
	}
	aDecl := stmts[1].(*csharpast.LocalDeclaration)
	bin, ok := aDecl.Init.(*csharpast.Binary)
	if !ok || bin.Operator != "??" {
		t.Fatalf("aDecl.Init = %#v, want Binary{??}", aDecl.Init)
	}
}

// TestLowerLocalDestructureObjectPatternWithRest exercises spec.md §4.4's
// object-pattern local declaration rule: `{a, ...rest}` lowers to a temp
// holding the whole rhs, one member-access declarator per named property,
// and a rest declarator built from the frontend's synthesized shape type.
func TestLowerLocalDestructureObjectPatternWithRest(t *testing.T) {
	ctx := freshContext()
	pattern := &ir.ObjectPattern{
		Properties: []ir.ObjectPatternProperty{
			{Key: "A", Pattern: &ir.IdentifierPattern{Name: "a"}, Shorthand: true},
		},
		Rest:              &ir.IdentifierPattern{Name: "rest"},
		RestShapeMembers:  []string{"B", "C"},
		RestSynthTypeName: "__RestOfFoo",
	}
	stmts, _ := LowerLocalDestructure(ctx, pattern, nil, &csharpast.Identifier{Name: "src"})
	if len(stmts) != 3 {
		t.Fatalf("len(stmts) = %d, want 3 (temp + a + rest)", len(stmts))
	}

	aDecl, ok := stmts[1].(*csharpast.LocalDeclaration)
	if !ok || aDecl.Name != "a" {
		t.Fatalf("stmts[1] = %#v, want declarator named a", stmts[1])
	}
	access, ok := aDecl.Init.(*csharpast.MemberAccess)
	if !ok || access.Name != "A" {
		t.Fatalf("aDecl.Init = %#v, want MemberAccess{Name: A}", aDecl.Init)
	}

	restDecl, ok := stmts[2].(*csharpast.LocalDeclaration)
	if !ok || restDecl.Name != "rest" {
		t.Fatalf("stmts[2] = %#v, want declarator named rest", stmts[2])
	}
	idType, ok := restDecl.Type.(*csharpast.IdentifierType)
	if !ok || idType.Name != "__RestOfFoo" {
		t.Fatalf("restDecl.Type = %#v, want IdentifierType{__RestOfFoo}", restDecl.Type)
	}
	creation, ok := restDecl.Init.(*csharpast.ObjectCreation)
	if !ok || len(creation.Initializers) != 2 {
		t.Fatalf("restDecl.Init = %#v, want ObjectCreation with 2 initializers", restDecl.Init)
	}
	if creation.Initializers[0].Name != "B" || creation.Initializers[1].Name != "C" {
		t.Fatalf("creation.Initializers = %#v, want members named B, C", creation.Initializers)
	}
}

// TestLowerLocalDestructureNestedArrayInObjectPattern checks a nested
// pattern (an array pattern nested inside an object property) recurses
// through LowerLocalDestructure rather than emitting a single declarator.
func TestLowerLocalDestructureNestedArrayInObjectPattern(t *testing.T) {
	ctx := freshContext()
	pattern := &ir.ObjectPattern{
		Properties: []ir.ObjectPatternProperty{
			{Key: "Pair", Pattern: &ir.ArrayPattern{
				Elements: []ir.ArrayPatternElement{
					{Pattern: &ir.IdentifierPattern{Name: "x"}},
					{Pattern: &ir.IdentifierPattern{Name: "y"}},
				},
			}},
		},
	}
	stmts, _ := LowerLocalDestructure(ctx, pattern, nil, &csharpast.Identifier{Name: "src"})
	// temp + (nested array temp + x + y)
	if len(stmts) != 4 {
		t.Fatalf("len(stmts) = %d, want 4 (obj temp + array temp + x + y)", len(stmts))
	}
	xDecl, ok := stmts[2].(*csharpast.LocalDeclaration)
	if !ok || xDecl.Name != "x" {
		t.Fatalf("stmts[2] = %#v, want declarator named x", stmts[2])
	}
}
