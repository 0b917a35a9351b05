// Package agentscmder provides the agents command for browsing agents
// published to the AIOS hub.
package agentscmder

import (
	"github.com/spf13/cobra"
)

const agentsLongDesc string = `Browse agents published to the AIOS hub.

The hub is the public registry that agents and tools are published to.
Use subcommands to query it:
  cereb agents list    List agents available on the hub

Examples:
  cereb agents list
  cereb agents list --hub-url https://hub.example.com`

const agentsShortDesc string = "Browse agents on the AIOS hub"

func NewAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: agentsShortDesc,
		Long:  agentsLongDesc,
	}

	cmd.AddCommand(newListCmd())

	return cmd
}
