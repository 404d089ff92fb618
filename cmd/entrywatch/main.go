package main

import (
	"os"

	"github.com/openchess/entrywatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
