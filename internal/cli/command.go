package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/dirsizes/internal/dirsizes"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// flags holds the raw command-line values before path resolution.
type flags struct {
	relative   string
	global     string
	excludes   []string
	noProgress bool
	debug      bool
}

func registerFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVarP(&f.relative, "relative", "r", "", "Scan `path` relative to the current directory")
	fs.StringVarP(&f.global, "global", "g", "", "Scan `path` as given (absolute path)")
	fs.StringSliceVarP(&f.excludes, "exclude", "e", []string{}, "Regex patterns to exclude")
	fs.BoolVar(&f.noProgress, "no-progress", false, "Disable the progress spinner")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug output")

	fs.SortFlags = false
}

// resolvePath returns the directory to scan. At most one of relative and global is set.
func resolvePath(f flags, cwd string) string {
	switch {
	case f.relative != "":
		return filepath.Join(cwd, f.relative)
	case f.global != "":
		return filepath.Clean(f.global)
	default:
		return cwd
	}
}

// Command builds the root cobra command.
func (c CLI) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "dirsizes [-r path | -g path]",
		Short: "List the entries of a directory by total size",
		Long: heredoc.Doc(`
			dirsizes lists every entry of a directory together with its total size,
			largest first. Directories are sized recursively.

			Without flags the current directory is scanned.
			Use -r to scan a path relative to the current directory,
			or -g to scan an absolute path.

			Errors met while scanning are reported after the results.
			Ctrl-C stops the scan and prints what was gathered so far.
		`),
		Args:          cobra.NoArgs,
		Version:       c.version,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flagSet := cmd.Flags()

			for _, name := range []string{"relative", "global"} {
				if flagSet.Changed(name) && flagSet.Lookup(name).Value.String() == "" {
					return fmt.Errorf("flag --%s requires a non-empty path", name)
				}
			}

			cmd.SilenceUsage = true

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			options := dirsizes.Options{
				Path:     resolvePath(f, cwd),
				Excludes: f.excludes,
				Debug:    f.debug,
			}

			return logic(cmd.Context(), options, !f.noProgress, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	registerFlags(cmd.Flags(), &f)
	cmd.MarkFlagsMutuallyExclusive("relative", "global")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}
