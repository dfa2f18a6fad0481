package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aryankumar/parex/internal/output"
	"github.com/aryankumar/parex/internal/util"
	"github.com/aryankumar/parex/pkg/parex"
	"github.com/aryankumar/parex/pkg/search"
)

// pattern holds the mutually exclusive matcher flags
type pattern struct {
	name  string
	regex string
	expr  string
}

func patternFlags(cmd *cobra.Command) (pattern, error) {
	var p pattern
	p.name, _ = cmd.Flags().GetString("name")
	p.regex, _ = cmd.Flags().GetString("regex")
	p.expr, _ = cmd.Flags().GetString("expr")

	set := 0
	for _, v := range []string{p.name, p.regex, p.expr} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return p, util.NewValidationError("name/regex/expr", nil, "only one of --name, --regex and --expr may be given")
	}
	return p, nil
}

func (p pattern) apply(b *search.Builder) *search.Builder {
	switch {
	case p.name != "":
		return b.Matching(p.name)
	case p.regex != "":
		return b.MatchingRegexp(p.regex)
	case p.expr != "":
		return b.MatchingExpr(p.expr)
	default:
		return b
	}
}

// builder assembles a run from the loaded settings and the command's flags
func (a *app) builder(cmd *cobra.Command, producer parex.Producer) (*search.Builder, error) {
	d := a.settings.Defaults

	errs := &util.MultiError{}
	p, err := patternFlags(cmd)
	errs.Add(err)
	if _, ok := output.ParseFormat(d.OutputFormat); !ok {
		errs.Add(util.NewValidationError("output", d.OutputFormat, "supported formats are table, json and yaml"))
	}
	if d.Threads < 1 {
		errs.Add(util.NewValidationError("threads", d.Threads, "must be at least 1"))
	}
	if d.Timeout < 0 {
		errs.Add(util.NewValidationError("timeout", d.Timeout, "must not be negative"))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	wide, _ := cmd.Flags().GetBool("wide")

	b := search.New().
		Source(producer).
		Threads(d.Threads).
		Limit(d.Limit).
		MaxDepth(d.MaxDepth).
		CollectPaths(true).
		CollectErrors(d.CollectErrors || wide).
		Logger(a.logger)
	return p.apply(b), nil
}

// runSearch executes a run over producer and prints the result.
// A partial result is printed even when the run stops early.
func (a *app) runSearch(cmd *cobra.Command, producer parex.Producer) error {
	b, err := a.builder(cmd, producer)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := a.settings.Defaults.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	a.logger.Debug("starting search",
		"command", cmd.Name(),
		"threads", b.Config().Threads,
		"limit", b.Config().Limit,
		"max_depth", b.Config().MaxDepth)

	result, runErr := b.Run(ctx)
	if result == nil {
		return runErr
	}

	if err := a.formatter(cmd).FormatResult(cmd.OutOrStdout(), result, runErr); err != nil {
		return util.WrapErrorf(err, "failed to write %s output", a.settings.Defaults.OutputFormat)
	}
	return runErr
}

func (a *app) formatter(cmd *cobra.Command) output.Formatter {
	format, _ := output.ParseFormat(a.settings.Defaults.OutputFormat)
	wide, _ := cmd.Flags().GetBool("wide")
	noHeaders, _ := cmd.Flags().GetBool("no-headers")
	return output.NewFormatter(format,
		output.WithNoColor(a.settings.Defaults.NoColor),
		output.WithNoHeaders(noHeaders),
		output.WithWide(wide))
}

// argOr returns the first positional argument, or fallback when there is none
func argOr(args []string, fallback string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return fallback
}
