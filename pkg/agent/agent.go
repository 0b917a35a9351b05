// Package agent defines the agents benchmark runs drive against an AIOS
// kernel, and the registry used to construct them by type name.
package agent

import (
	"context"

	"github.com/synaptiq/cereb/pkg/aios"
)

// Agent is something that can solve benchmark problems through a kernel.
type Agent interface {
	// Name returns the kernel agent name queries are addressed to.
	Name() string

	// RunHumanEval asks the agent to complete one HumanEval prompt and
	// returns the raw model output, marker tags included.
	RunHumanEval(ctx context.Context, prompt string) (string, error)
}

// Config carries everything a factory needs to construct an agent.
type Config struct {
	// Client talks to the kernel. Required.
	Client *aios.Client

	// AgentName is the kernel agent queries are addressed to. Required.
	AgentName string

	// Models selects and tunes the models the kernel may run queries with.
	Models []aios.ModelConfig
}

// Factory constructs an agent from config.
type Factory func(cfg Config) (Agent, error)
