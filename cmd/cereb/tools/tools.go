// Package toolscmder provides the tools command for browsing tools
// published to the AIOS hub.
package toolscmder

import (
	"github.com/spf13/cobra"
)

const toolsLongDesc string = `Browse tools published to the AIOS hub.

The hub is the public registry that agents and tools are published to.
Use subcommands to query it:
  cereb tools list    List tools available on the hub

Examples:
  cereb tools list
  cereb tools list --hub-url https://hub.example.com`

const toolsShortDesc string = "Browse tools on the AIOS hub"

func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: toolsShortDesc,
		Long:  toolsLongDesc,
	}

	cmd.AddCommand(newListCmd())

	return cmd
}
