// Package configcmder provides the config command for managing persistent
// cereb configuration stored in the .cereb/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent cereb configuration.

Configuration is stored as config.toml in the .cereb/ directory and provides
default values for command flags. CLI flags and CEREB_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  kernel.base_url, kernel.agent_name, kernel.timeout_seconds,
  hub.base_url,
  bench.agent_type, bench.output_file, bench.programs_dir,
  bench.max_num, bench.continue_on_error,
  llm.name, llm.temperature, llm.max_tokens

Use subcommands to get, set, or list configuration values:
  cereb config set <key> <value>    Set a configuration value
  cereb config get <key>            Get a configuration value
  cereb config list                 List all configuration values

Examples:
  cereb config set kernel.base_url http://localhost:8000
  cereb config set llm.name gpt-4o-mini
  cereb config get kernel.agent_name
  cereb config list`

const configShortDesc string = "Manage persistent cereb configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
