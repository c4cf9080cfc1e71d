package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gopkg.microglot.org/pegc/internal/version"
)

func init() {
	var versionCommand = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Show version and build information for the compiler.",
		Run: func(cmd *cobra.Command, args []string) {
			generateVersionOutput(os.Stdout)
		},
	}
	RootCommand.AddCommand(versionCommand)
}

func generateVersionOutput(out io.Writer) {
	fmt.Fprintln(out, "Version: "+version.Version)
	fmt.Fprintln(out, "Go Version: "+version.GoVersion)
	fmt.Fprintln(out, "Platform: "+version.Platform)
	if version.Vcs != "" {
		fmt.Fprintln(out, "Build Commit: "+version.Vcs)
	}
	if version.Timestamp != "" {
		fmt.Fprintln(out, "Build Timestamp: "+version.Timestamp)
	}
}
