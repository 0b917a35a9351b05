package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/synaptiq/cereb/pkg/aios"
)

// TypeKernel is the built-in agent type that forwards prompts to an AIOS
// kernel over HTTP.
const TypeKernel = "kernel"

// humanEvalInstruction tells the model how to fence its final program so
// the benchmark extractor can find it.
const humanEvalInstruction = "You are an expert Python programmer. " +
	"Complete the function you are given, responding with the function body " +
	"indented as it would appear inside the function. " +
	"Wrap your final answer between <FINAL_ANSWER> and </FINAL_ANSWER> " +
	"with no code outside the tags."

// KernelAgent drives a single named agent on an AIOS kernel.
type KernelAgent struct {
	client    *aios.Client
	agentName string
	models    []aios.ModelConfig
}

// NewKernelAgent builds the kernel-backed agent from config.
func NewKernelAgent(cfg Config) (Agent, error) {
	if cfg.Client == nil {
		return nil, errors.New("agent config requires a kernel client")
	}
	if cfg.AgentName == "" {
		return nil, errors.New("agent config requires a kernel agent name")
	}

	return &KernelAgent{
		client:    cfg.Client,
		agentName: cfg.AgentName,
		models:    cfg.Models,
	}, nil
}

// Name returns the kernel agent name queries are addressed to.
func (a *KernelAgent) Name() string {
	return a.agentName
}

// RunHumanEval sends the prompt as a single chat query and returns the raw
// response text. Kernel and transport failures come back as errors carrying
// the reported status code.
func (a *KernelAgent) RunHumanEval(ctx context.Context, prompt string) (string, error) {
	messages := []aios.Message{
		aios.NewMessage(aios.RoleSystem, humanEvalInstruction),
		aios.NewMessage(aios.RoleUser, prompt),
	}

	resp, err := a.client.Chat(ctx, a.agentName, messages, a.models...)
	if err != nil {
		return "", fmt.Errorf("building query: %w", err)
	}
	if !resp.Succeeded() {
		return "", fmt.Errorf("kernel query failed (status %d): %s", resp.StatusCode, resp.Error)
	}

	return resp.ResponseMessage, nil
}

var _ Agent = (*KernelAgent)(nil)
