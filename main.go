package main

import (
	"os"

	"github.com/paixi-lab/paixi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
