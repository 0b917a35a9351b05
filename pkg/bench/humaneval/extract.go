// Package humaneval adapts kernel agents to the HumanEval code completion
// benchmark. It extracts fenced answers from raw model output, assembles
// standalone verification programs, and exposes a process func the bench
// harness can drive.
package humaneval

import "strings"

const (
	startMarker = "<FINAL_ANSWER>"
	endMarker   = "</FINAL_ANSWER>"
)

// Extract returns the text strictly between the first <FINAL_ANSWER> and
// the first </FINAL_ANSWER> marker. The boolean reports whether a
// well-formed answer was present; a missing marker or an end marker before
// the start marker yields ("", false).
func Extract(output string) (string, bool) {
	start := strings.Index(output, startMarker)
	if start == -1 {
		return "", false
	}

	begin := start + len(startMarker)
	end := strings.Index(output, endMarker)
	if end < begin {
		return "", false
	}

	return output[begin:end], true
}
