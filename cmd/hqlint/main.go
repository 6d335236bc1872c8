// Command hqlint lints and formats Hive SQL and serves it over LSP.
package main

import (
	"os"

	"github.com/hqltools/hqlint/internal/cli"
)

// version is overridden at build time:
//
//	go build -ldflags "-X main.version=1.2.3" ./cmd/hqlint
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
