package main

import (
	"os"

	"github.com/nmaptor/nmaptor/cmd/nmaptor/commands"
)

func main() {
	if err := commands.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
