package main

import (
	"os"

	"github.com/wayfarer-ai/wayfarer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
