package main

import (
	"os"

	"github.com/readmate/readmate/cmd/readmate/cmd"
)

func main() {
	if err := cmd.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
