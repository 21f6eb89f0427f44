package main

import (
	"os"

	"github.com/bianoble/toolchain-action/cmd/toolchain-action/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
