package main

import (
	"os"

	"github.com/hirelens/hirelens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
