// Package examinator defines the CLI commands of the grading harness.
package examinator

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examinator",
	Short: "Automated grading harness for C programming assignments",
	Long: `Examinator builds a learner's submission, runs it against a
hierarchical tree of test fixtures through the lit test tool, and emits a
structured report with per-rubric scores.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(versionCmd)
}
