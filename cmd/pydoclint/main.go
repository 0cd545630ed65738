package main

import (
	"os"

	"pydoclint/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
