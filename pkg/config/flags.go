package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --kernel-url
// on both "cereb bench run" and "cereb chat").
type Flag struct {
	// Name is the long flag name (e.g. "kernel-url").
	Name string

	// Shorthand is the one-letter short flag (e.g. "o"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "kernel.base_url").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag, AddIntFlag,
// AddBoolFlag, and BindRegisteredFlags to avoid typos or drift from one
// command to another.
const (
	FlagKernelURL       = "kernel-url"
	FlagAgentName       = "agent"
	FlagTimeout         = "timeout"
	FlagHubURL          = "hub-url"
	FlagAgentType       = "agent-type"
	FlagOutputFile      = "output-file"
	FlagProgramsDir     = "programs-dir"
	FlagMaxNum          = "max-num"
	FlagContinueOnError = "continue-on-error"
	FlagModel           = "model"
)

// Flags is the shared flag registry used by cereb commands.
var Flags = FlagSet{
	FlagKernelURL: {
		Name:        "kernel-url",
		ViperKey:    "kernel.base_url",
		Description: "Base URL of the AIOS kernel",
	},
	FlagAgentName: {
		Name:        "agent",
		Shorthand:   "a",
		ViperKey:    "kernel.agent_name",
		Description: "Kernel agent name to send queries to",
	},
	FlagTimeout: {
		Name:        "timeout",
		ViperKey:    "kernel.timeout_seconds",
		Description: "Request timeout in seconds",
	},
	FlagHubURL: {
		Name:        "hub-url",
		ViperKey:    "hub.base_url",
		Description: "Base URL of the agent hub registry",
	},
	FlagAgentType: {
		Name:        "agent-type",
		Shorthand:   "t",
		ViperKey:    "bench.agent_type",
		Description: "Registered agent type to run the benchmark with",
	},
	FlagOutputFile: {
		Name:        "output-file",
		Shorthand:   "o",
		ViperKey:    "bench.output_file",
		Description: "Path to write JSONL results to",
	},
	FlagProgramsDir: {
		Name:        "programs-dir",
		ViperKey:    "bench.programs_dir",
		Description: "Directory to write per-task verification programs to",
	},
	FlagMaxNum: {
		Name:        "max-num",
		Shorthand:   "n",
		ViperKey:    "bench.max_num",
		Description: "Maximum number of records to process (negative for all)",
	},
	FlagContinueOnError: {
		Name:        "continue-on-error",
		ViperKey:    "bench.continue_on_error",
		Description: "Record per-task failures and keep going instead of aborting",
	},
	FlagModel: {
		Name:        "model",
		Shorthand:   "m",
		ViperKey:    "llm.name",
		Description: "Model name the kernel should run the query with",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *int) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultInt(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().IntVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}

// defaultInt returns the default int value for a viper key from NewDefaultConfig.
func defaultInt(viperKey string) int {
	v := viper.New()
	setViperDefaults(v)
	return v.GetInt(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	v := viper.New()
	setViperDefaults(v)
	return v.GetBool(viperKey)
}
