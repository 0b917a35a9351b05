package config

const (
	defaultKernelBaseURL = "http://localhost:8000"
	defaultKernelAgent   = "demo_agent"
	defaultKernelTimeout = 120

	defaultHubBaseURL = "https://app.aios.foundation"

	defaultBenchAgentType   = "kernel"
	defaultBenchOutputFile  = "results.jsonl"
	defaultBenchProgramsDir = "programs"

	// defaultBenchMaxNum means the whole dataset; 0 would process nothing.
	defaultBenchMaxNum = -1

	defaultLLMName = "gpt-4o-mini"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Kernel: KernelConfig{
			BaseURL:        defaultKernelBaseURL,
			AgentName:      defaultKernelAgent,
			TimeoutSeconds: defaultKernelTimeout,
		},
		Hub: HubConfig{
			BaseURL: defaultHubBaseURL,
		},
		Bench: BenchConfig{
			AgentType:   defaultBenchAgentType,
			OutputFile:  defaultBenchOutputFile,
			ProgramsDir: defaultBenchProgramsDir,
			MaxNum:      defaultBenchMaxNum,
		},
		LLM: LLMConfig{
			Name: defaultLLMName,
		},
	}
}
