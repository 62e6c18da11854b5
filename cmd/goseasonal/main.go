// Command goseasonal is the command-line entry point for goseasonal.
package main

import (
	"github.com/sartorproj/goseasonal/cmd"
	"github.com/sartorproj/goseasonal/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error executing command", err)
	}
}
