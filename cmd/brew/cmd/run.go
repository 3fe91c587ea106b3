package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brewlang/brew/pkg/brew"
)

var (
	evalExpr string
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Brew file or expression",
	Long: `Execute a Brew program from a file or inline expression.

Examples:
  # Run a script file
  brew run script.brew

  # Evaluate an inline expression
  brew run -e "func main() { print(1 + 1); }"

  # Run with execution trace
  brew run --trace script.brew`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var source string

	switch {
	case evalExpr != "":
		source = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	traceEnabled := trace || viper.GetBool("trace")

	if isatty.IsTerminal(os.Stdin.Fd()) && verbose {
		fmt.Fprintln(os.Stderr, "[reading input from a terminal]")
	}

	engine := brew.New(brew.Options{
		Output: os.Stdout,
		Input:  os.Stdin,
		Trace:  traceEnabled,
	})

	if err := engine.Run(source); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}
	return nil
}
