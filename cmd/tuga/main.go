// tuga is the command-line client for a Tucluster modelling service.
package main

import (
	"github.com/tucluster/tuga/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
