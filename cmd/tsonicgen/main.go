// Command tsonicgen is a development harness for the lowering pipeline: it
// reads an IR JSON fixture and an Options YAML file, runs the backend, and
// writes the resulting C# file map to disk. It exists to regenerate golden
// fixtures by hand during development, not as the frontend's orchestrating
// driver (out of scope — SPEC_FULL.md §1).
package main

import (
	"fmt"
	"os"

	"github.com/tsonic-lang/backend/cmd/tsonicgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
