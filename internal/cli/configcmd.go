package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryankumar/parex/internal/output"
)

// newConfigCmd creates the config command
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change parex configuration",
		Long: `Show or change the parex configuration file.

Settings are read from --config, $HOME/.parex/.parex.yaml or $HOME/.parex.yaml,
overridden by PAREX_* environment variables and then by command-line flags.`,
	}

	cmd.AddCommand(newConfigViewCmd(a))
	cmd.AddCommand(newConfigSetCmd(a))

	return cmd
}

func newConfigViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := output.ParseFormat(a.settings.Defaults.OutputFormat)
			if !ok {
				format = output.FormatTable
			}
			formatter := output.NewFormatter(format, output.WithNoColor(a.settings.Defaults.NoColor))

			if format == output.FormatTable {
				return formatter.Format(cmd.OutOrStdout(), flatten(a))
			}
			return formatter.Format(cmd.OutOrStdout(), a.settings)
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value and save the file",
		Example: `  parex config set defaults.threads 8
  parex config set kube.context prod
  parex config set sql.dsn catalogue.db`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.manager.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := a.manager.Save(); err != nil {
				return err
			}

			path, _ := a.manager.Path()
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)
			return nil
		},
	}
}

// flatten renders the settings as dotted keys for table output
func flatten(a *app) map[string]string {
	s := a.settings
	path, _ := a.manager.Path()
	return map[string]string{
		"file":                   path,
		"defaults.threads":       strconv.Itoa(s.Defaults.Threads),
		"defaults.limit":         strconv.Itoa(s.Defaults.Limit),
		"defaults.maxDepth":      strconv.Itoa(s.Defaults.MaxDepth),
		"defaults.outputFormat":  s.Defaults.OutputFormat,
		"defaults.noColor":       strconv.FormatBool(s.Defaults.NoColor),
		"defaults.collectErrors": strconv.FormatBool(s.Defaults.CollectErrors),
		"defaults.timeout":       s.Defaults.Timeout.String(),
		"kube.kubeconfig":        s.Kube.Kubeconfig,
		"kube.context":           s.Kube.Context,
		"kube.namespaces":        strings.Join(s.Kube.Namespaces, ","),
		"sql.driver":             s.SQL.Driver,
		"sql.dsn":                s.SQL.DSN,
		"sql.table":              s.SQL.Table,
		"sql.pathColumn":         s.SQL.PathColumn,
		"sql.nameColumn":         s.SQL.NameColumn,
		"sql.kindColumn":         s.SQL.KindColumn,
		"sql.depthColumn":        s.SQL.DepthColumn,
	}
}
