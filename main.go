package main

import (
	"os"

	"github.com/getlawrence/antiplag/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
