package main

import (
	"os"

	"github.com/rustyeddy/playground/cmd/playground/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
