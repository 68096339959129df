package emitter

import (
	"testing"

	"github.com/tsonic-lang/backend/internal/ir"
)

func TestDeriveLocalTypesClassAndInterface(t *testing.T) {
	body := []ir.Statement{
		&ir.ClassDeclaration{
			Name:       "Point",
			TypeParams: []ir.TypeParam{{Name: "T"}},
			Members: []ir.ClassMember{
				&ir.PropertyDeclaration{Name: "X", TypeAnnotation: &ir.PrimitiveType{Name: ir.PrimNumber}},
				&ir.PropertyDeclaration{Name: "Untyped"},
			},
		},
		&ir.InterfaceDeclaration{
			Name: "Shape",
			Members: []ir.InterfaceMember{
				{Name: "Area", TypeAnnotation: &ir.PrimitiveType{Name: ir.PrimNumber}},
				{Name: "Describe", Params: []ir.Param{}},
			},
		},
		&ir.EnumDeclaration{Name: "Color", Members: []ir.EnumMember{{Name: "Red"}}},
		&ir.TypeAliasDeclaration{Name: "PointAlias", AliasedType: &ir.ReferenceType{Name: "Point"}},
		&ir.FunctionDeclaration{Name: "ignored"},
	}

	got := DeriveLocalTypes(body)

	if len(got) != 4 {
		t.Fatalf("expected 4 local type entries, got %d: %v", len(got), got)
	}

	point, ok := got["Point"]
	if !ok {
		t.Fatalf("expected a Point entry")
	}
	if point.Kind != LocalTypeClass {
		t.Errorf("Point.Kind = %v, want LocalTypeClass", point.Kind)
	}
	if len(point.TypeParameters) != 1 || point.TypeParameters[0] != "T" {
		t.Errorf("Point.TypeParameters = %v, want [T]", point.TypeParameters)
	}
	if _, ok := point.Members["X"]; !ok {
		t.Errorf("Point.Members missing typed property X")
	}
	if _, ok := point.Members["Untyped"]; ok {
		t.Errorf("Point.Members should not include a property with no TypeAnnotation")
	}

	shape, ok := got["Shape"]
	if !ok {
		t.Fatalf("expected a Shape entry")
	}
	if shape.Kind != LocalTypeInterface {
		t.Errorf("Shape.Kind = %v, want LocalTypeInterface", shape.Kind)
	}
	if _, ok := shape.Members["Area"]; !ok {
		t.Errorf("Shape.Members missing property signature Area")
	}
	if _, ok := shape.Members["Describe"]; ok {
		t.Errorf("Shape.Members should not include a method signature (Params != nil)")
	}

	color, ok := got["Color"]
	if !ok || color.Kind != LocalTypeEnum {
		t.Fatalf("expected a Color entry with LocalTypeEnum, got %v", color)
	}

	alias, ok := got["PointAlias"]
	if !ok || alias.Kind != LocalTypeAlias {
		t.Fatalf("expected a PointAlias entry with LocalTypeAlias, got %v", alias)
	}
	if alias.AliasedType == nil {
		t.Errorf("PointAlias.AliasedType should be populated")
	}

	if _, ok := got["ignored"]; ok {
		t.Errorf("a FunctionDeclaration must not contribute a local type entry")
	}
}

func TestDeriveLocalTypesEmpty(t *testing.T) {
	got := DeriveLocalTypes(nil)
	if len(got) != 0 {
		t.Errorf("expected an empty map for nil body, got %v", got)
	}
}
