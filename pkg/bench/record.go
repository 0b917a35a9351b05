// Package bench runs agents over benchmark datasets and collects their
// predictions. Datasets are JSONL files of records; a run processes records
// in file order and persists every prediction in a single write at the end.
package bench

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one benchmark problem. The field names follow the HumanEval
// dataset release.
type Record struct {
	// TaskID identifies the problem, e.g. "HumanEval/0".
	TaskID string `json:"task_id"`

	// Prompt is the function signature and docstring to complete.
	Prompt string `json:"prompt"`

	// Test is the dataset's check function for the problem.
	Test string `json:"test"`

	// EntryPoint is the function name the check function calls.
	EntryPoint string `json:"entry_point"`
}

// LoadRecords reads benchmark records from a JSONL file in file order.
// Files ending in .gz are transparently decompressed. Blank lines are
// skipped; a malformed line fails the whole load with its line number.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip dataset: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("parsing dataset line %d: %w", line, err)
		}
		if rec.TaskID == "" {
			return nil, fmt.Errorf("dataset line %d: missing task_id", line)
		}

		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	return records, nil
}
