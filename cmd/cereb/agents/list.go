package agentscmder

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/synaptiq/cereb/pkg/cliui"
	"github.com/synaptiq/cereb/pkg/config"
	"github.com/synaptiq/cereb/pkg/hub"
)

type listCommander struct {
	hubURL string
}

const listLongDesc string = `List agents available on the AIOS hub.

Fetches the agent registry from the configured hub and renders it as a
table with each agent's name, description, author, and latest version.

Examples:
  cereb agents list
  cereb agents list --hub-url https://hub.example.com`

const listShortDesc string = "List agents available on the hub"

func newListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagHubURL})

			cmder.hubURL = v.GetString("hub.base_url")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagHubURL, &cmder.hubURL)

	return cmd
}

func (c *listCommander) run(cmd *cobra.Command) error {
	client := hub.NewClient(hub.ClientConfig{BaseURL: c.hubURL})

	var agents []hub.Agent
	fmt.Println()
	err := cliui.Step(os.Stdout, "Fetching agents from hub", func() error {
		var err error
		agents, err = client.ListAgents(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	if len(agents) == 0 {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No agents published to the hub."))
		return nil
	}

	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, []string{a.Name, a.Description, a.Author, a.Version})
	}

	fmt.Println()
	fmt.Println(cliui.Table([]string{"Name", "Description", "Author", "Latest Version"}, rows))
	fmt.Printf("\n  %s %s\n\n",
		cliui.KeyStyle.Render("Total agents available:"),
		cliui.NameStyle.Render(strconv.Itoa(len(agents))),
	)

	return nil
}
