package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmitModulesWritesFiles(t *testing.T) {
	tempDir := t.TempDir()

	irPath := filepath.Join(tempDir, "colors.ir.json")
	irDoc := `{
		"filePath": "colors.ts",
		"namespace": "Demo.Colors",
		"body": [
			{
				"kind": "EnumDeclaration",
				"name": "Color",
				"exported": true,
				"members": [{"name": "Red"}, {"name": "Green"}]
			}
		]
	}`
	if err := os.WriteFile(irPath, []byte(irDoc), 0o644); err != nil {
		t.Fatalf("writing IR fixture: %v", err)
	}

	optionsPath := filepath.Join(tempDir, "options.yaml")
	optionsDoc := "rootNamespace: Demo\n"
	if err := os.WriteFile(optionsPath, []byte(optionsDoc), 0o644); err != nil {
		t.Fatalf("writing options fixture: %v", err)
	}

	outDir := filepath.Join(tempDir, "out")

	optionsFile = optionsPath
	outputDir = outDir
	emitVerbose = false
	defer func() {
		optionsFile = ""
		outputDir = "."
	}()

	if err := emitModules(nil, []string{irPath}); err != nil {
		t.Fatalf("emitModules() error = %v", err)
	}

	generated := filepath.Join(outDir, "colors.g.cs")
	if _, err := os.Stat(generated); err != nil {
		t.Fatalf("expected %s to exist: %v", generated, err)
	}
}

func TestEmitModulesMissingOptions(t *testing.T) {
	optionsFile = filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { optionsFile = "" }()

	if err := emitModules(nil, []string{"ignored.json"}); err == nil {
		t.Fatalf("expected an error for a missing options file")
	}
}
