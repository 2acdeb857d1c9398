package main

import (
	"os"

	"github.com/akozyrev/checkride/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
