package tsonicbackend

import (
	"testing"

	"github.com/tsonic-lang/backend/internal/emitter"
	"github.com/tsonic-lang/backend/internal/ir"
)

func TestTypeRefToIR(t *testing.T) {
	tests := []struct {
		name string
		ref  TypeRef
		want ir.Type
	}{
		{"primitive", TypeRef{Kind: "primitive", Name: "number"}, &ir.PrimitiveType{Name: ir.PrimNumber}},
		{"reference", TypeRef{Kind: "reference", Name: "Widget"}, &ir.ReferenceType{Name: "Widget"}},
		{"array", TypeRef{Kind: "array", Element: &TypeRef{Kind: "primitive", Name: "string"}},
			&ir.ArrayType{Element: &ir.PrimitiveType{Name: ir.PrimString}}},
		{"typeParam", TypeRef{Kind: "typeParam", Name: "T"}, &ir.TypeParameterType{Name: "T"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ref.toIR()
			if err != nil {
				t.Fatalf("toIR() error = %v", err)
			}
			if got.Kind() != tt.want.Kind() {
				t.Errorf("toIR().Kind() = %v, want %v", got.Kind(), tt.want.Kind())
			}
		})
	}
}

func TestTypeRefToIRUnknownKind(t *testing.T) {
	_, err := TypeRef{Kind: "bogus"}.toIR()
	if err == nil {
		t.Fatalf("expected an error for an unknown TypeRef kind")
	}
}

func TestTypeRefArrayMissingElement(t *testing.T) {
	_, err := TypeRef{Kind: "array"}.toIR()
	if err == nil {
		t.Fatalf("expected an error for an array TypeRef with no element")
	}
}

func TestLocalTypeToEmitter(t *testing.T) {
	lt := LocalType{
		Kind:           "class",
		TypeParameters: []string{"T"},
		Members: map[string]TypeRef{
			"Count": {Kind: "primitive", Name: "number"},
		},
	}
	info, err := lt.toEmitter()
	if err != nil {
		t.Fatalf("toEmitter() error = %v", err)
	}
	if info.Kind != emitter.LocalTypeClass {
		t.Errorf("info.Kind = %v, want LocalTypeClass", info.Kind)
	}
	if len(info.TypeParameters) != 1 || info.TypeParameters[0] != "T" {
		t.Errorf("info.TypeParameters = %v, want [T]", info.TypeParameters)
	}
	if _, ok := info.Members["Count"]; !ok {
		t.Errorf("info.Members missing Count")
	}
}

func TestLocalTypeUnknownKind(t *testing.T) {
	_, err := LocalType{Kind: "bogus"}.toEmitter()
	if err == nil {
		t.Fatalf("expected an error for an unknown LocalType kind")
	}
}

func TestOptionsToEmitterOptionsDefaultsIndent(t *testing.T) {
	eopts, err := Options{RootNamespace: "Demo"}.toEmitterOptions()
	if err != nil {
		t.Fatalf("toEmitterOptions() error = %v", err)
	}
	if eopts.Indent != 4 {
		t.Errorf("Indent = %d, want default of 4", eopts.Indent)
	}
	if eopts.RootNamespace != "Demo" {
		t.Errorf("RootNamespace = %q, want %q", eopts.RootNamespace, "Demo")
	}
}

func TestOptionsToEmitterOptionsModuleMap(t *testing.T) {
	opts := Options{
		RootNamespace: "Demo",
		Indent:        2,
		ModuleMap: map[string]ModuleMapEntry{
			"__tsonic_anonymous_types": {
				Namespace: "Demo.Anon",
				LocalTypes: map[string]LocalType{
					"Point": {
						Kind: "class",
						Members: map[string]TypeRef{
							"X": {Kind: "primitive", Name: "number"},
						},
					},
				},
			},
		},
		PublicLocalTypes: []string{"Widget"},
	}

	eopts, err := opts.toEmitterOptions()
	if err != nil {
		t.Fatalf("toEmitterOptions() error = %v", err)
	}
	if eopts.Indent != 2 {
		t.Errorf("Indent = %d, want 2", eopts.Indent)
	}
	entry, ok := eopts.ModuleMap["__tsonic_anonymous_types"]
	if !ok {
		t.Fatalf("expected a moduleMap entry for __tsonic_anonymous_types")
	}
	if entry.Namespace != "Demo.Anon" {
		t.Errorf("entry.Namespace = %q, want %q", entry.Namespace, "Demo.Anon")
	}
	if _, ok := entry.LocalTypes["Point"]; !ok {
		t.Errorf("expected a Point local type entry")
	}
	if !eopts.PublicLocalTypes["Widget"] {
		t.Errorf("expected Widget in PublicLocalTypes")
	}
}
