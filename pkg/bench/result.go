package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Result is one prediction, ready for an evaluation harness.
type Result struct {
	// TaskID identifies the problem the prediction answers.
	TaskID string `json:"task_id"`

	// Completion is the extracted program text. Empty when extraction
	// found no answer.
	Completion string `json:"completion"`

	// Error records why a record produced no usable completion. Omitted
	// for clean predictions.
	Error string `json:"error,omitempty"`
}

// WriteResults persists results as JSONL at path, one result per line in
// list order. The file is created or truncated first, so writing the same
// list twice yields identical bytes.
func WriteResults(results []Result, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, res := range results {
		line, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("encoding result %s: %w", res.TaskID, err)
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("writing result %s: %w", res.TaskID, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing result %s: %w", res.TaskID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output file: %w", err)
	}

	return nil
}
