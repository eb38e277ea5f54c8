package main

import (
	"os"

	"github.com/amirbrooks/tman/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
