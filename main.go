package main

import (
	"os"

	"gopkg.microglot.org/pegc/cmd"
)

func main() {
	if err := cmd.RootCommand.Execute(); err != nil {
		os.Exit(2)
	}
}
