package tsonicbackend

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tsonic-lang/backend/internal/ir"
)

// TestEndToEndRegularModule exercises a non-static-container module (an
// exported enum as the sole top-level declaration) through the public
// LowerModules entry point and snapshots the printed C# text (SPEC_FULL.md
// §8 End-to-End Scenarios, realized as go-snaps golden tests).
func TestEndToEndRegularModule(t *testing.T) {
	m := &ir.Module{
		FilePath:  "colors.ts",
		Namespace: "Demo.Colors",
		Body: []ir.Statement{
			&ir.EnumDeclaration{
				Name:     "Color",
				Exported: true,
				Members: []ir.EnumMember{
					{Name: "Red"},
					{Name: "Green"},
					{Name: "Blue"},
				},
			},
		},
	}

	result, err := LowerModules(Options{RootNamespace: "Demo"}, []*ir.Module{m})
	if err != nil {
		t.Fatalf("LowerModules() error = %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got: %v", result.Errors)
	}
	text, ok := result.Files["colors.g.cs"]
	if !ok {
		t.Fatalf("expected colors.g.cs in the file map, got %v", result.Files)
	}
	snaps.MatchSnapshot(t, text)
}

// TestEndToEndStaticContainerModule exercises a module with loose top-level
// bindings, which requires the synthetic static-container wrapper class and
// the shared module-container marker unit.
func TestEndToEndStaticContainerModule(t *testing.T) {
	m := &ir.Module{
		FilePath:          "constants.ts",
		Namespace:         "Demo.Constants",
		ClassName:         "ConstantsModule",
		IsStaticContainer: true,
		Body: []ir.Statement{
			&ir.VariableStatement{
				VarKind: "const",
				Declarators: []ir.Declarator{
					{
						Pattern: &ir.IdentifierPattern{Name: "MaxRetries"},
						Init:    &ir.NumericLiteral{Raw: "3", Value: 3},
					},
				},
				Exported: true,
			},
		},
	}

	result, err := LowerModules(Options{RootNamespace: "Demo"}, []*ir.Module{m})
	if err != nil {
		t.Fatalf("LowerModules() error = %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got: %v", result.Errors)
	}
	snaps.MatchSnapshot(t, result.Files["constants.g.cs"])
	snaps.MatchSnapshot(t, result.Files["__tsonic_module_containers.g.cs"])
}

// TestEndToEndDecodesJSON drives the JSON path through Lower (and
// transitively internal/ir.DecodeModule) rather than constructing a literal
// internal/ir.Module, per SPEC_FULL.md §8's "one decoder-focused test"
// carve-out.
func TestEndToEndDecodesJSON(t *testing.T) {
	doc := []byte(`{
		"filePath": "status.ts",
		"namespace": "Demo.Status",
		"body": [
			{
				"kind": "EnumDeclaration",
				"name": "Status",
				"exported": true,
				"members": [
					{"name": "Active"},
					{"name": "Inactive"}
				]
			}
		]
	}`)

	result, err := Lower(Options{RootNamespace: "Demo"}, [][]byte{doc})
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got: %v", result.Errors)
	}
	text, ok := result.Files["status.g.cs"]
	if !ok {
		t.Fatalf("expected status.g.cs in the file map, got %v", result.Files)
	}
	snaps.MatchSnapshot(t, text)
}

func TestLowerInvalidJSON(t *testing.T) {
	_, err := Lower(Options{RootNamespace: "Demo"}, [][]byte{[]byte("not json")})
	if err == nil {
		t.Fatalf("expected an error for an invalid IR document")
	}
}
