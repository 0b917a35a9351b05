// Package initcmder provides the init command for initializing a local .cereb
// directory in the current working directory.
package initcmder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/synaptiq/cereb/pkg/config"
)

const (
	dirName = ".cereb"
)

type initCommander struct {
	preset string
}

const initLongDesc string = `Initialize a new .cereb/ directory in the current working directory.

Creates a local .cereb/ directory that takes precedence over the default
~/.cereb/ directory for configuration, chat sessions, and other cereb
operations, and writes a config.toml with default values.

Pass --preset to seed the config with model defaults for a known
provider instead of the built-in defaults.

This is useful for maintaining separate cereb state per project or directory.

Examples:
  cereb init
  cereb init --preset openai
  cereb init --preset ollama`

const initShortDesc string = "Initialize a local .cereb/ directory"

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "",
		"Seed the config with provider defaults ("+strings.Join(config.ValidPresetNames(), ", ")+")")

	return cmd
}

func (c *initCommander) run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		fmt.Printf("Already initialized: %s\n", dir)
		return nil
	}

	cfg := config.NewDefaultConfig()
	if c.preset != "" {
		cfg, err = config.PresetConfig(c.preset)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating .cereb directory: %w", err)
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("preparing config: %w", err)
	}
	if err := cfger.SaveConfig(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized .cereb directory: %s\n", dir)
	return nil
}
