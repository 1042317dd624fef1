package main

import (
	"os"

	"github.com/aleister1102/gitsentry/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
