// Package main is the entry point for the sqlb CLI.
package main

import (
	"os"

	"github.com/satishbabariya/sqlfluent/cmd/sqlb/commands"
	"github.com/satishbabariya/sqlfluent/internal/ui"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}
