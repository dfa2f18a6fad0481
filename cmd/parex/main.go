package main

import (
	"log/slog"
	"os"

	"github.com/aryankumar/parex/internal/cli"
	"github.com/aryankumar/parex/internal/util"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx := util.SetupSignalHandler()

	if err := cli.Execute(ctx); err != nil {
		slog.Error("command failed", "error", util.FriendlyError(err))
		os.Exit(1)
	}
}
