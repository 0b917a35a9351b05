package humaneval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/synaptiq/cereb/pkg/agent"
	"github.com/synaptiq/cereb/pkg/bench"
	"github.com/synaptiq/cereb/pkg/logger"
)

// Config holds what an Invoker needs to run.
type Config struct {
	// Agent produces raw completions for prompts. Required.
	Agent agent.Agent

	// ProgramsDir is where verification programs are written. Required.
	ProgramsDir string
}

// Invoker adapts an agent to the bench harness. One Process call runs the
// agent on a record, extracts the fenced completion, and drops a
// standalone verification program beside the results.
type Invoker struct {
	agent       agent.Agent
	programsDir string
	logger      *slog.Logger
}

// NewInvoker creates an invoker.
func NewInvoker(cfg Config, log *slog.Logger) (*Invoker, error) {
	if cfg.Agent == nil {
		return nil, errors.New("invoker requires an agent")
	}
	if cfg.ProgramsDir == "" {
		return nil, errors.New("invoker requires a programs directory")
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Invoker{
		agent:       cfg.Agent,
		programsDir: cfg.ProgramsDir,
		logger:      log,
	}, nil
}

// Process implements bench.ProcessFunc for HumanEval records. Output
// without a well-formed final answer is not an error: the record yields an
// empty completion, and the verification program is written either way so
// every processed task leaves an artifact.
func (inv *Invoker) Process(ctx context.Context, rec bench.Record) (bench.Result, error) {
	raw, err := inv.agent.RunHumanEval(ctx, rec.Prompt)
	if err != nil {
		return bench.Result{}, fmt.Errorf("running agent on %s: %w", rec.TaskID, err)
	}

	completion, found := Extract(raw)
	if !found {
		inv.logger.Warn("no final answer in agent output", "task_id", rec.TaskID)
	}

	if err := inv.writeProgram(rec, completion); err != nil {
		return bench.Result{}, err
	}

	return bench.Result{TaskID: rec.TaskID, Completion: completion}, nil
}

// CheckProgram assembles the standalone verification program for a record:
// the dataset prompt, the completion, the dataset's check function, and a
// call to it with the record's entry point.
func CheckProgram(rec bench.Record, completion string) string {
	return rec.Prompt + completion + "\n" + rec.Test + "\n" + "check(" + rec.EntryPoint + ")"
}

// ProgramFileName returns the side-file name for a task. The whole task id
// is kept (sanitized) so tasks from different suites cannot collide, e.g.
// "HumanEval/7" becomes "programHumanEval7.py".
func ProgramFileName(taskID string) string {
	return "program" + sanitizeTaskID(taskID) + ".py"
}

// sanitizeTaskID keeps letters, digits, underscores, and hyphens.
func sanitizeTaskID(taskID string) string {
	var b strings.Builder
	for _, r := range taskID {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (inv *Invoker) writeProgram(rec bench.Record, completion string) error {
	if err := os.MkdirAll(inv.programsDir, 0o755); err != nil {
		return fmt.Errorf("creating programs directory: %w", err)
	}

	path := filepath.Join(inv.programsDir, ProgramFileName(rec.TaskID))
	if err := os.WriteFile(path, []byte(CheckProgram(rec, completion)), 0o600); err != nil {
		return fmt.Errorf("writing verification program: %w", err)
	}

	inv.logger.Debug("wrote verification program", "task_id", rec.TaskID, "path", path)
	return nil
}
