// Package cerebcmder
package cerebcmder

import (
	"github.com/spf13/cobra"

	agentscmder "github.com/synaptiq/cereb/cmd/cereb/agents"
	benchcmder "github.com/synaptiq/cereb/cmd/cereb/bench"
	chatcmder "github.com/synaptiq/cereb/cmd/cereb/chat"
	configcmder "github.com/synaptiq/cereb/cmd/cereb/config"
	initcmder "github.com/synaptiq/cereb/cmd/cereb/init"
	toolscmder "github.com/synaptiq/cereb/cmd/cereb/tools"
	versioncmder "github.com/synaptiq/cereb/cmd/version"
)

const cerebLongDesc string = `Cereb is a client toolkit for AIOS agent kernels.

Talk to a kernel using:
  cereb chat               Interactive chat with a kernel agent
  cereb bench run          Run a benchmark dataset through an agent

Browse the hub using:
  cereb tools list         List tools published to the hub
  cereb agents list        List agents published to the hub`

const cerebShortDesc string = "Cereb - AIOS agent client"

func NewCerebCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cereb",
		Short: cerebShortDesc,
		Long:  cerebLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .cereb config directory")

	// Add subcommands
	cmd.AddCommand(benchcmder.NewBenchCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(toolscmder.NewToolsCmd())
	cmd.AddCommand(agentscmder.NewAgentsCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
