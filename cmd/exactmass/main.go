// exactmass - profile scan centroiding tool
package main

import (
	"fmt"
	"os"

	"github.com/inambioinfo/mzmine2/cmd/exactmass/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
