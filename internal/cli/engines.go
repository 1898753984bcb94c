package cli

import (
	"github.com/spf13/cobra"
)

// enginesCommand creates the engines command listing registered layouts.
func (c *CLI) enginesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List available layout engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.out.title("Layout engines")
			for _, name := range c.registry.Names() {
				if name == c.config.Layout.Engine {
					c.out.info("%s %s", StyleHighlight.Render(name), StyleDim.Render("(default)"))
					continue
				}
				c.out.info("%s", name)
			}
			return nil
		},
	}
}
