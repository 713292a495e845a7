package main

import (
	"os"

	"github.com/patrickdubios/sqlquerypp/cmd/sqlquerypp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
