package emitter

import (
	"testing"

	"github.com/tidwall/gjson"
	"github.com/tsonic-lang/backend/internal/ir"
	"github.com/tsonic-lang/backend/internal/ir/fixtures"
	"github.com/tsonic-lang/backend/pkg/csharpast"
)

// TestLookupLocalTypeFallsBackToModuleMapAlias exercises the
// `__tsonic_anonymous_types` Open Question resolution (spec.md §9,
// DESIGN.md decision 2): a ReferenceType name absent from the module's own
// LocalTypes still resolves through Options.ModuleMap, including following
// an alias chain registered there, so an object literal's contextual type
// lowers to the alias's target rather than its own synthetic name.
func TestLookupLocalTypeFallsBackToModuleMapAlias(t *testing.T) {
	doc, err := fixtures.AnonymousTypesModuleMap("AnonPoint", "typeAlias", `{"kind":"ReferenceType","name":"Point"}`)
	if err != nil {
		t.Fatalf("AnonymousTypesModuleMap() error = %v", err)
	}

	aliased, err := ir.DecodeType(gjson.Get(doc, "__tsonic_anonymous_types.localTypes.AnonPoint.aliasedType"))
	if err != nil {
		t.Fatalf("DecodeType() error = %v", err)
	}

	ctx := NewModuleContext(&Options{
		RootNamespace: "Demo",
		ModuleMap: map[string]*ModuleMapEntry{
			"__tsonic_anonymous_types": {
				LocalTypes: map[string]*LocalTypeInfo{
					"AnonPoint": {Kind: LocalTypeAlias, AliasedType: aliased},
				},
			},
		},
	}, false, nil)

	objLit := &ir.ObjectLiteral{
		ContextType: &ir.ReferenceType{Name: "AnonPoint"},
		Properties: []ir.ObjectProperty{
			{Key: "X", Value: &ir.NumericLiteral{Raw: "1", Value: 1}},
			{Key: "Y", Value: &ir.NumericLiteral{Raw: "2", Value: 2}},
		},
	}

	expr, _ := lowerObjectLiteral(ctx, objLit)
	creation, ok := expr.(*csharpast.ObjectCreation)
	if !ok {
		t.Fatalf("lowerObjectLiteral() = %T, want *csharpast.ObjectCreation", expr)
	}
	idType, ok := creation.Type.(*csharpast.IdentifierType)
	if !ok || idType.Name != "Point" {
		t.Fatalf("Type = %#v, want IdentifierType{Name: \"Point\"} (resolved through the moduleMap alias chain, not the literal ContextType name AnonPoint)", creation.Type)
	}
	if len(creation.Initializers) != 2 {
		t.Fatalf("Initializers = %d, want 2", len(creation.Initializers))
	}
}

func TestLookupLocalTypeModuleMapNonAliasIsPlainIdentifier(t *testing.T) {
	ctx := NewModuleContext(&Options{
		RootNamespace: "Demo",
		ModuleMap: map[string]*ModuleMapEntry{
			"__tsonic_anonymous_types": {
				LocalTypes: map[string]*LocalTypeInfo{
					"Shape": {Kind: LocalTypeClass},
				},
			},
		},
	}, false, nil)

	got := LowerType(ctx, &ir.ReferenceType{Name: "Shape"})
	idType, ok := got.(*csharpast.IdentifierType)
	if !ok || idType.Name != "Shape" {
		t.Fatalf("LowerType() = %#v, want IdentifierType{Name: \"Shape\"}", got)
	}
}
