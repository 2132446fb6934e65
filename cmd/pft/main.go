package main

import (
	"os"

	"github.com/connorq03-ops/personalfinancetracker/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
