package main

import (
	"os"

	"github.com/freightworks/loadplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
