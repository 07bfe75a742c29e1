package main

import (
	"os"

	"github.com/gnolang/anthem/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
