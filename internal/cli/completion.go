package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/koljapluemer/canvasgrid/pkg/render"
)

// completionCommand prints a completion script for the given shell. Besides
// subcommands it completes --format values, one comma-separated entry at a
// time.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script for canvasgrid to stdout.

Load it into the current shell, for example:

  source <(canvasgrid completion bash)
  canvasgrid completion fish | source
  canvasgrid completion zsh > "${fpath[1]}/_canvasgrid"
  canvasgrid completion powershell | Out-String | Invoke-Expression

Formats for --format complete one entry at a time, so
"canvasgrid layout board.canvas -f txt,<TAB>" offers the remaining ones.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeFormats completes the comma-separated --format flag one format at
// a time.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, f := range render.Formats {
		if strings.Contains(","+prefix, ","+f+",") {
			continue
		}
		out = append(out, prefix+f)
	}
	return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}
