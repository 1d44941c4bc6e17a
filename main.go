package main

import (
	"os"

	"github.com/palabra-app/palabra/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
