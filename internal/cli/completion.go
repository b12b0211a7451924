package cli

import (
	"github.com/spf13/cobra"
)

// shells maps the completion argument to the cobra generator.
var shells = map[string]func(root *cobra.Command, c *CLI) error{
	"bash":       func(root *cobra.Command, c *CLI) error { return root.GenBashCompletionV2(c.Stdout, true) },
	"zsh":        func(root *cobra.Command, c *CLI) error { return root.GenZshCompletion(c.Stdout) },
	"fish":       func(root *cobra.Command, c *CLI) error { return root.GenFishCompletion(c.Stdout, true) },
	"powershell": func(root *cobra.Command, c *CLI) error { return root.GenPowerShellCompletionWithDesc(c.Stdout) },
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for histoprint. Flag values such as
--format, --encoding and --notation complete to their allowed choices.

  $ source <(histoprint completion bash)
  $ histoprint completion zsh > "${fpath[1]}/_histoprint"
  $ histoprint completion fish > ~/.config/fish/completions/histoprint.fish
  PS> histoprint completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shells[args[0]](cmd.Root(), c)
		},
	}
}
