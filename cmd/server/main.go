package main

import (
	"os"

	"github.com/maxviazov/pets-service/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
