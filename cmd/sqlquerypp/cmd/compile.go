package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/patrickdubios/sqlquerypp"
	"github.com/patrickdubios/sqlquerypp/directive"
)

var (
	outputFormat string
	debugAST     bool

	compileCmd = &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile combined_result directives in a SQL statement into recursive-CTE SQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}
			input, err := readInput(args)
			if err != nil {
				return errors.Wrap(err, "reading input")
			}
			return runCompile(cmd, input)
		},
	}
)

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

func runCompile(cmd *cobra.Command, input string) error {
	if debugAST {
		if err := dumpDirectives(cmd, input); err != nil {
			return errors.Wrap(err, "dumping directive AST")
		}
	}

	artifact, err := sqlquerypp.Compile(input)
	if err != nil {
		return errors.Wrap(err, "compiling statement")
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(artifact)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), artifact.Statement)
		for _, r := range artifact.ScopeRanges {
			fmt.Fprintf(cmd.OutOrStdout(), "# scope %d-%d\n", r.Begin, r.End)
		}
		return nil
	}
}

// dumpDirectives prints the directives found in input to stderr before
// compilation, for troubleshooting what the rewriter is about to do with
// them.
func dumpDirectives(cmd *cobra.Command, input string) error {
	final, err := directive.Parse(input)
	if err != nil {
		return err
	}
	for _, d := range final.Directives {
		fmt.Fprintln(cmd.ErrOrStderr(), repr.String(d, repr.Indent("  ")))
	}
	return nil
}

func init() {
	compileCmd.Flags().StringVar(&outputFormat, "format", "text", "output format: text or json")
	compileCmd.Flags().BoolVar(&debugAST, "debug-ast", false, "dump each directive's parsed form to stderr before compiling")
}
