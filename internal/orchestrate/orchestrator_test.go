package orchestrate

import (
	"strings"
	"testing"

	"github.com/tsonic-lang/backend/internal/emitter"
	"github.com/tsonic-lang/backend/internal/ir"
)

func enumModule(filePath, namespace, name string, exported bool) *ir.Module {
	return &ir.Module{
		FilePath:  filePath,
		Namespace: namespace,
		Body: []ir.Statement{
			&ir.EnumDeclaration{
				Name:     name,
				Members:  []ir.EnumMember{{Name: "A"}, {Name: "B"}},
				Exported: exported,
			},
		},
	}
}

func TestLowerSingleModule(t *testing.T) {
	opts := &emitter.Options{RootNamespace: "Demo", Indent: 4}
	m := enumModule("widgets.ts", "Demo.Widgets", "Color", true)

	result := Lower(opts, []*ir.Module{m})

	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got: %v", result.Errors)
	}
	text, ok := result.Files["widgets.g.cs"]
	if !ok {
		t.Fatalf("expected output file %q, got files: %v", "widgets.g.cs", keys(result.Files))
	}
	if !strings.Contains(text, "namespace Demo.Widgets") {
		t.Errorf("output missing namespace declaration:\n%s", text)
	}
	if !strings.Contains(text, "enum Color") {
		t.Errorf("output missing enum declaration:\n%s", text)
	}
	if _, ok := result.Files["__tsonic_module_containers.g.cs"]; ok {
		t.Errorf("regular module should not trigger the module-container marker unit")
	}
}

func TestLowerStaticContainerModule(t *testing.T) {
	opts := &emitter.Options{RootNamespace: "Demo", Indent: 4}
	m := &ir.Module{
		FilePath:          "helpers.ts",
		Namespace:         "Demo.Helpers",
		ClassName:         "HelpersModule",
		IsStaticContainer: true,
		Body: []ir.Statement{
			&ir.VariableStatement{
				VarKind: "const",
				Declarators: []ir.Declarator{
					{Pattern: &ir.IdentifierPattern{Name: "Pi"}, Init: &ir.NumericLiteral{Raw: "3.14", Value: 3.14}},
				},
				Exported: true,
			},
		},
	}

	result := Lower(opts, []*ir.Module{m})

	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got: %v", result.Errors)
	}
	if _, ok := result.Files["helpers.g.cs"]; !ok {
		t.Fatalf("expected output file %q, got files: %v", "helpers.g.cs", keys(result.Files))
	}
	marker, ok := result.Files["__tsonic_module_containers.g.cs"]
	if !ok {
		t.Fatalf("static-container module should trigger the module-container marker unit")
	}
	if !strings.Contains(marker, "ModuleContainerAttribute") {
		t.Errorf("marker unit missing attribute declaration:\n%s", marker)
	}
}

func TestLowerRecoversFromICE(t *testing.T) {
	opts := &emitter.Options{RootNamespace: "Demo", Indent: 4}
	good := enumModule("good.ts", "Demo.Good", "Status", true)
	// A FunctionDeclaration reaching a non-static-container module's top
	// level is a frontend contract violation (see lowerTopLevelDeclaration's
	// doc comment) and triggers a real ICE.
	bad := &ir.Module{
		FilePath:  "bad.ts",
		Namespace: "Demo.Bad",
		Body:      []ir.Statement{&ir.FunctionDeclaration{Name: "loose"}},
	}

	result := Lower(opts, []*ir.Module{good, bad})

	if len(result.Errors) == 0 {
		t.Fatalf("expected a non-empty Errors slice with one failing module")
	}
	if len(result.Errors) != 1 || result.Errors[0].Module != "bad.ts" {
		t.Fatalf("expected exactly one error for bad.ts, got %v", result.Errors)
	}
	if _, ok := result.Files["good.g.cs"]; !ok {
		t.Errorf("sibling module should still lower cleanly, got files: %v", keys(result.Files))
	}
	if _, ok := result.Files["bad.g.cs"]; ok {
		t.Errorf("failing module must not contribute a file")
	}
}

func TestTrimSourceExt(t *testing.T) {
	tests := []struct{ in, want string }{
		{"foo.ts", "foo"},
		{"foo.tsx", "foo"},
		{"dir/foo.bar.ts", "dir/foo.bar"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := trimSourceExt(tt.in); got != tt.want {
			t.Errorf("trimSourceExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
