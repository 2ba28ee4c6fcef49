package main

import (
	"os"

	"github.com/BTECHK/sql-coach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
