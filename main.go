package main

import (
	"os"

	"github.com/railops/trackplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
