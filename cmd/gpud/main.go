// Package main is the entry point for the gpud CLI client.
package main

import "github.com/gpudeals/gpu-deals/cmd/gpud/cmd"

func main() {
	cmd.Execute()
}
