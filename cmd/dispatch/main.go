package main

import (
	"os"

	"flight-ops/dispatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
