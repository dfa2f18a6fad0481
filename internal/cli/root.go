package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/aryankumar/parex/internal/config"
)

// app carries state shared by every command of one invocation
type app struct {
	cfgFile  string
	manager  *config.Manager
	settings *config.ParexConfig
	logger   *slog.Logger
	logOut   io.Writer
}

// flagBindings maps flag names to the config keys they override.
// Only flags defined on the running command are bound.
var flagBindings = map[string]string{
	"threads":        "defaults.threads",
	"limit":          "defaults.limit",
	"max-depth":      "defaults.maxDepth",
	"output":         "defaults.outputFormat",
	"no-color":       "defaults.noColor",
	"collect-errors": "defaults.collectErrors",
	"timeout":        "defaults.timeout",
	"kubeconfig":     "kube.kubeconfig",
	"context":        "kube.context",
	"namespace":      "kube.namespaces",
	"driver":         "sql.driver",
	"dsn":            "sql.dsn",
	"table":          "sql.table",
	"path-column":    "sql.pathColumn",
	"name-column":    "sql.nameColumn",
	"kind-column":    "sql.kindColumn",
	"depth-column":   "sql.depthColumn",
}

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	a := &app{logOut: os.Stderr}

	rootCmd := &cobra.Command{
		Use:   "parex",
		Short: "Parex - parallel search over files, clusters and tables",
		Long: `Parex walks a source in parallel and reports the items that match.

Sources are a directory tree (fs), the namespaces, pods and services of a
Kubernetes cluster (kube), or the rows of a SQL table (sql). Items are matched
by name substring, regular expression or CEL expression, and a run can stop
after a fixed number of matches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.parex.yaml)")
	flags.StringP("output", "o", "", "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output with debug logging")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("wide", false, "list recoverable failures in table output")
	flags.Bool("no-headers", false, "omit table headers")
	flags.Duration("timeout", 0, "stop the run after this long (0 means no timeout)")
	flags.IntP("threads", "j", runtime.NumCPU(), "number of workers")
	flags.Int("limit", -1, "stop after this many matches (-1 means no limit)")
	flags.Int("max-depth", -1, "maximum traversal depth (-1 means unbounded)")
	flags.Bool("collect-errors", false, "report every recoverable failure")
	flags.String("name", "", "match names containing this text, ignoring case")
	flags.String("regex", "", "match names against a regular expression")
	flags.String("expr", "", "match items with a CEL expression over path, name, kind and depth")

	_ = rootCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)

	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newFsCmd(a))
	rootCmd.AddCommand(newKubeCmd(a))
	rootCmd.AddCommand(newSQLCmd(a))

	return rootCmd
}

// initConfig loads configuration with the running command's flags bound over it
func (a *app) initConfig(cmd *cobra.Command) error {
	a.manager = config.NewManager(a.cfgFile)

	for name, key := range flagBindings {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := a.manager.BindFlag(key, flag); err != nil {
				return err
			}
		}
	}

	settings, err := a.manager.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.settings = settings

	a.setupLogging(cmd)
	return nil
}

// setupLogging configures structured logging with slog
func (a *app) setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	// run progress is logged at info; keep it quiet unless asked for
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if a.settings.Defaults.NoColor {
		handler = slog.NewJSONHandler(a.logOut, opts)
	} else {
		handler = slog.NewTextHandler(a.logOut, opts)
	}

	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)

	if verbose {
		path, _ := a.manager.Path()
		a.logger.Debug("verbose logging enabled", "config", path)
	}
}
