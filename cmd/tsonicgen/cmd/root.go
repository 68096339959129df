package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tsonicgen",
	Short: "Development harness for the tsonic IR-to-C# backend",
	Long: `tsonicgen drives the IR-to-C# lowering pipeline from the command line.

It is a development tool: the frontend that actually owns the build
pipeline integrates pkg/tsonicbackend directly, it does not shell out to
this binary. tsonicgen exists to regenerate golden fixtures and to inspect
emitted output by hand.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
