package main

import (
	"os"

	"github.com/messhub/ledger/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
