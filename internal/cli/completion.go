package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for nodegraph.

Bash:
  $ source <(nodegraph completion bash)

Zsh:
  $ nodegraph completion zsh > "${fpath[1]}/_nodegraph"

Fish:
  $ nodegraph completion fish | source

PowerShell:
  PS> nodegraph completion powershell | Out-String | Invoke-Expression

Engine names for --engine complete from the registered layout engines.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := c.out.w
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}

// completeEngines completes --engine values from the registry.
func (c *CLI) completeEngines(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, name := range c.registry.Names() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// engineFlag registers --engine/-e on cmd with engine name completion.
func (c *CLI) engineFlag(cmd *cobra.Command, target *string, usage string) {
	cmd.Flags().StringVarP(target, "engine", "e", "", usage)
	_ = cmd.RegisterFlagCompletionFunc("engine", c.completeEngines)
}
