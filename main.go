package main

import (
	"os"

	"github.com/cmsforge/cmsforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
