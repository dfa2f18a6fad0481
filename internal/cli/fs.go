package cli

import (
	"github.com/spf13/cobra"

	"github.com/aryankumar/parex/pkg/source/fsys"
)

// newFsCmd creates the fs command
func newFsCmd(a *app) *cobra.Command {
	var includeRoot bool

	cmd := &cobra.Command{
		Use:   "fs [PATH]",
		Short: "Search a directory tree",
		Long: `Search a directory tree in parallel.

Entries below PATH (default ".") are visited depth-first. Directories are
containers, regular files are primary items and symbolic links are reported
as links without being followed. Unreadable directories are skipped and
counted as failures.`,
		Example: `  # Find invoices anywhere below the current directory
  parex fs --name invoice

  # First 10 Go files at most two levels deep
  parex fs ./src --regex '\.go$' --max-depth 2 --limit 10

  # Large directories only, as JSON
  parex fs /var --expr 'kind == "container" && depth == 1' -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := argOr(args, ".")
			a.logger.Debug("walking directory tree", "root", root)
			return a.runSearch(cmd, fsys.NewOS(root, fsys.IncludeRoot(includeRoot)))
		},
	}

	cmd.Flags().BoolVar(&includeRoot, "include-root", false, "report PATH itself at depth 0")

	return cmd
}
