package main

import (
	"os"

	"github.com/codeforge/challengegen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
