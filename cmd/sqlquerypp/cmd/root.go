package cmd

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/patrickdubios/sqlquerypp/internal/clog"
	"github.com/patrickdubios/sqlquerypp/sqlquerypperr"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sqlquerypp",
		Short:        "sqlquerypp",
		SilenceUsage: true,
		Long:         `Expand combined_result(...) AS $var { ... } directives in a SQL statement into plain recursive-CTE SQL.`,
	}

	debug bool
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if debug {
			clog.Configure(logrus.DebugLevel, nil)
		}
	})
	return rootCmd.Execute()
}

// ExitCode maps a failure from Execute to the process exit code spec.md's
// CLI surface promises: 0 on success, 1 for any sqlquerypperr compile error,
// 2 for any other failure (a usage error, unreadable input).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if isCompileError(err) {
		return 1
	}
	return 2
}

func isCompileError(err error) bool {
	switch errors.Cause(err).(type) {
	case *sqlquerypperr.MissingCharacter,
		*sqlquerypperr.UnsupportedNesting,
		*sqlquerypperr.DirectiveIncomplete,
		*sqlquerypperr.InnerQueryInvalid,
		*sqlquerypperr.ResultingQueryInvalid:
		return true
	default:
		return false
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
