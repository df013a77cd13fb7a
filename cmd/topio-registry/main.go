package main

import (
	"os"

	"github.com/topio-market/topio-registry/registryservice"
)

func main() {
	// Run logs its own failures; the exit code is all that is left to do.
	if err := registryservice.Run(); err != nil {
		os.Exit(1)
	}
}
