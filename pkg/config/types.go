package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent cereb configuration stored as config.toml
// in the .cereb/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Kernel  KernelConfig `toml:"kernel"`
	Hub     HubConfig    `toml:"hub"`
	Bench   BenchConfig  `toml:"bench"`
	LLM     LLMConfig    `toml:"llm"`
}

// KernelConfig holds settings for the remote AIOS kernel that cereb
// commands send queries to. BaseURL is a full URL (scheme + host + port).
type KernelConfig struct {
	BaseURL        string `toml:"base_url,omitempty"`
	AgentName      string `toml:"agent_name,omitempty"`
	TimeoutSeconds uint   `toml:"timeout_seconds,omitempty"`
}

// HubConfig holds settings for the remote agent/tool registry.
type HubConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// BenchConfig holds benchmark harness settings.
type BenchConfig struct {
	AgentType       string `toml:"agent_type,omitempty"`
	OutputFile      string `toml:"output_file,omitempty"`
	ProgramsDir     string `toml:"programs_dir,omitempty"`
	MaxNum          int    `toml:"max_num,omitempty"`
	ContinueOnError bool   `toml:"continue_on_error,omitempty"`
}

// LLMConfig holds the default model tuning sent with queries.
// Only Name is required by kernels; the rest ride along when set.
type LLMConfig struct {
	Name        string  `toml:"name,omitempty"`
	Temperature float64 `toml:"temperature,omitempty"`
	MaxTokens   uint    `toml:"max_tokens,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"kernel.base_url": {
		get: func(c *Config) string { return c.Kernel.BaseURL },
		set: func(c *Config, v string) error { c.Kernel.BaseURL = v; return nil },
	},
	"kernel.agent_name": {
		get: func(c *Config) string { return c.Kernel.AgentName },
		set: func(c *Config, v string) error { c.Kernel.AgentName = v; return nil },
	},
	"kernel.timeout_seconds": {
		get: func(c *Config) string {
			if c.Kernel.TimeoutSeconds == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Kernel.TimeoutSeconds), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for kernel.timeout_seconds: %w", err)
			}
			c.Kernel.TimeoutSeconds = uint(n)
			return nil
		},
	},
	"hub.base_url": {
		get: func(c *Config) string { return c.Hub.BaseURL },
		set: func(c *Config, v string) error { c.Hub.BaseURL = v; return nil },
	},
	"bench.agent_type": {
		get: func(c *Config) string { return c.Bench.AgentType },
		set: func(c *Config, v string) error { c.Bench.AgentType = v; return nil },
	},
	"bench.output_file": {
		get: func(c *Config) string { return c.Bench.OutputFile },
		set: func(c *Config, v string) error { c.Bench.OutputFile = v; return nil },
	},
	"bench.programs_dir": {
		get: func(c *Config) string { return c.Bench.ProgramsDir },
		set: func(c *Config, v string) error { c.Bench.ProgramsDir = v; return nil },
	},
	"bench.max_num": {
		get: func(c *Config) string { return strconv.Itoa(c.Bench.MaxNum) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for bench.max_num: %w", err)
			}
			c.Bench.MaxNum = n
			return nil
		},
	},
	"bench.continue_on_error": {
		get: func(c *Config) string { return strconv.FormatBool(c.Bench.ContinueOnError) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for bench.continue_on_error: %w", err)
			}
			c.Bench.ContinueOnError = b
			return nil
		},
	},
	"llm.name": {
		get: func(c *Config) string { return c.LLM.Name },
		set: func(c *Config, v string) error { c.LLM.Name = v; return nil },
	},
	"llm.temperature": {
		get: func(c *Config) string {
			if c.LLM.Temperature == 0 {
				return ""
			}
			return strconv.FormatFloat(c.LLM.Temperature, 'g', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for llm.temperature: %w", err)
			}
			c.LLM.Temperature = f
			return nil
		},
	},
	"llm.max_tokens": {
		get: func(c *Config) string {
			if c.LLM.MaxTokens == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.LLM.MaxTokens), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for llm.max_tokens: %w", err)
			}
			c.LLM.MaxTokens = uint(n)
			return nil
		},
	},
}
