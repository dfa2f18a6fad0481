package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryankumar/parex/internal/output"
	"github.com/aryankumar/parex/internal/util"
	"github.com/aryankumar/parex/pkg/version"
)

// newVersionCmd creates the version command
func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display detailed version information for the Parex CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, a)
		},
	}

	return cmd
}

func runVersion(cmd *cobra.Command, a *app) error {
	info := version.Get()
	w := cmd.OutOrStdout()

	// an explicit -o picks a structured format; otherwise print the banner
	if !cmd.Flags().Changed("output") {
		fmt.Fprintln(w, info.String())
		return nil
	}

	format, ok := output.ParseFormat(a.settings.Defaults.OutputFormat)
	if !ok {
		return util.NewValidationError("output", a.settings.Defaults.OutputFormat, "supported formats are table, json and yaml")
	}
	formatter := output.NewFormatter(format, output.WithNoColor(a.settings.Defaults.NoColor))

	if format == output.FormatTable {
		return formatter.Format(w, map[string]string{
			"Version":    info.Version,
			"Commit":     info.Commit,
			"Build Time": info.BuildTime,
			"Go Version": info.GoVersion,
			"Platform":   info.Platform,
		})
	}
	return formatter.Format(w, info)
}
