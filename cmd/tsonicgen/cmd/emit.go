package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tsonic-lang/backend/pkg/tsonicbackend"
)

var (
	optionsFile  string
	outputDir    string
	emitVerbose  bool
)

var emitCmd = &cobra.Command{
	Use:   "emit [ir.json...]",
	Short: "Lower one or more IR JSON fixtures to C# and write the result to disk",
	Long: `emit reads one or more IR JSON documents (the frontend's wire format for
internal/ir.Module) and an Options YAML file, runs the lowering pipeline, and
writes every emitted file into the output directory.

Examples:
  # Emit a single module using defaults from options.yaml
  tsonicgen emit widgets.ir.json --options options.yaml

  # Emit several modules from one run into ./out
  tsonicgen emit a.ir.json b.ir.json --options options.yaml -o out`,
	Args: cobra.MinimumNArgs(1),
	RunE: emitModules,
}

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().StringVar(&optionsFile, "options", "", "path to an Options YAML file (required)")
	emitCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory to write emitted files into")
	emitCmd.Flags().BoolVarP(&emitVerbose, "verbose", "v", false, "verbose output")
	_ = emitCmd.MarkFlagRequired("options")
}

func emitModules(_ *cobra.Command, args []string) error {
	opts, err := tsonicbackend.LoadOptions(optionsFile)
	if err != nil {
		return fmt.Errorf("loading options: %w", err)
	}

	docs := make([][]byte, len(args))
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		docs[i] = data
	}

	if emitVerbose {
		fmt.Fprintf(os.Stderr, "Lowering %d module(s) with root namespace %q...\n", len(docs), opts.RootNamespace)
	}

	result, err := tsonicbackend.Lower(opts, docs)
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}

	for _, modErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "module error: %s\n", modErr)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	for name, text := range result.Files {
		outPath := filepath.Join(outputDir, name)
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		if emitVerbose {
			fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
		}
	}

	fmt.Printf("Emitted %d file(s) to %s\n", len(result.Files), outputDir)
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d module(s) failed to lower", len(result.Errors))
	}
	return nil
}
