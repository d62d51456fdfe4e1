// Command dirsizes lists the entries of a directory ordered by total size.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/idelchi/dirsizes/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // Build-time variable
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		var interrupted *cli.InterruptedError
		if errors.As(err, &interrupted) {
			os.Exit(interrupted.ExitCode())
		}

		cobra.CheckErr(err)
	}
}
