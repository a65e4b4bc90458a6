package main

import (
	"fmt"
	"os"

	"github.com/cmbp/sitedeck/internal/commands"
	"github.com/cmbp/sitedeck/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	err := commands.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
