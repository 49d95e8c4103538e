package main

import (
	"os"

	"github.com/azuyamat/mia/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
