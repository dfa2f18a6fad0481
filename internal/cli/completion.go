package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryankumar/parex/internal/output"
	"github.com/aryankumar/parex/pkg/source/kube"
)

// newCompletionCmd creates the completion command for generating shell completions
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for Parex CLI.

The completion script must be sourced to provide completions. After generating the
completion script, follow the instructions for your shell:

Bash:
  $ source <(parex completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ parex completion bash > /etc/bash_completion.d/parex
  # macOS:
  $ parex completion bash > $(brew --prefix)/etc/bash_completion.d/parex

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ parex completion zsh > "${fpath[1]}/_parex"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ parex completion fish | source

  # To load completions for each session, execute once:
  $ parex completion fish > ~/.config/fish/completions/parex.fish

PowerShell:
  PS> parex completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> parex completion powershell > parex.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Skip parent's PersistentPreRunE (config loading) for completion command
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompletion(cmd, args[0])
		},
	}

	return cmd
}

// runCompletion generates the completion script for the specified shell
func runCompletion(cmd *cobra.Command, shell string) error {
	switch shell {
	case "bash":
		return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
	case "zsh":
		return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
	case "fish":
		return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported shell type %q", shell)
	}
}

// completeOutputFormats completes values for --output
func completeOutputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(output.FormatTable) + "\tkubectl-style table",
		string(output.FormatJSON) + "\tindented JSON report",
		string(output.FormatYAML) + "\tYAML report",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeKubeContexts completes --context from the contexts of the selected kubeconfig
func completeKubeContexts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	kubeconfig, _ := cmd.Flags().GetString("kubeconfig")

	contexts, err := kube.NewKubeconfigLoader(kubeconfig).Contexts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return contexts, cobra.ShellCompDirectiveNoFileComp
}
