// Command image-unshred shreds images into shuffled vertical strips and puts
// them back together. All commands live in internal/cli.
package main

import (
	"os"

	"github.com/ironsheep/image-unshred/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cli.Version = Version
	cli.BuildTime = BuildTime
	cli.GitCommit = GitCommit

	os.Exit(cli.Execute(cli.NewRootCommand()))
}
