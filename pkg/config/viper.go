package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/synaptiq/cereb/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the CEREB_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (CEREB_KERNEL_BASE_URL, CEREB_BENCH_MAX_NUM, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: CEREB_KERNEL_BASE_URL, CEREB_HUB_BASE_URL, etc.
	v.SetEnvPrefix("CEREB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Kernel
	v.SetDefault("kernel.base_url", d.Kernel.BaseURL)
	v.SetDefault("kernel.agent_name", d.Kernel.AgentName)
	v.SetDefault("kernel.timeout_seconds", d.Kernel.TimeoutSeconds)

	// Hub
	v.SetDefault("hub.base_url", d.Hub.BaseURL)

	// Bench
	v.SetDefault("bench.agent_type", d.Bench.AgentType)
	v.SetDefault("bench.output_file", d.Bench.OutputFile)
	v.SetDefault("bench.programs_dir", d.Bench.ProgramsDir)
	v.SetDefault("bench.max_num", d.Bench.MaxNum)
	v.SetDefault("bench.continue_on_error", d.Bench.ContinueOnError)

	// LLM
	v.SetDefault("llm.name", d.LLM.Name)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
}
