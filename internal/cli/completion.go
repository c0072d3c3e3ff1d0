package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for stadump.

To load completions:

Bash:
  $ source <(stadump completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ stadump completion bash > /etc/bash_completion.d/stadump
  # macOS:
  $ stadump completion bash > $(brew --prefix)/etc/bash_completion.d/stadump

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ stadump completion zsh > "${fpath[1]}/_stadump"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ stadump completion fish | source

  # To load completions for each session, execute once:
  $ stadump completion fish > ~/.config/fish/completions/stadump.fish

PowerShell:
  PS> stadump completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> stadump completion powershell > stadump.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeBaselineNames completes stored baseline names with the given
// prefix. Completion runs without the root pre-run, so the config is loaded
// here.
func (c *CLI) completeBaselineNames(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := c.loadConfig(); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	r, err := c.newRunner(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer r.Close()

	names, err := r.Store.List(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFirstBaseline completes a baseline name as the first argument only.
func (c *CLI) completeFirstBaseline(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return c.completeBaselineNames(cmd, args, toComplete)
}
