package main

import (
	"os"

	"github.com/agroconsult/painel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
