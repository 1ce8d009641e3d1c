package main

import (
	"github.com/custodia-labs/starradar-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
