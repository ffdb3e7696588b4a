// Package main is the entry point for the gpu-deals server.
package main

import (
	"os"

	"github.com/gpudeals/gpu-deals/cmd/gpu-deals/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
