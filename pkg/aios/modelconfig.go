package aios

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ModelConfig selects and tunes a model the kernel should run a query
// with. Optional knobs are pointers so that "unset" and "zero" stay
// distinct on the wire.
type ModelConfig struct {
	// Name identifies the model, e.g. "gpt-4o-mini" or "qwen2.5:7b".
	Name string `json:"name"`

	// Temperature controls sampling randomness. Valid range [0, 2].
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens caps the generated completion length. Must be positive.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// TopP controls nucleus sampling. Valid range [0, 1].
	TopP *float64 `json:"top_p,omitempty"`

	// FrequencyPenalty discourages token repetition. Valid range [-2, 2].
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`

	// PresencePenalty discourages topic repetition. Valid range [-2, 2].
	PresencePenalty *float64 `json:"presence_penalty,omitempty"`
}

// DecodeModelConfig parses a single model configuration from JSON,
// rejecting unknown keys so typos like "temprature" fail loudly instead
// of being silently ignored.
func DecodeModelConfig(data []byte) (*ModelConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var mc ModelConfig
	if err := dec.Decode(&mc); err != nil {
		return nil, fmt.Errorf("decoding model config: %w", err)
	}

	if err := mc.Validate(); err != nil {
		return nil, err
	}

	return &mc, nil
}

// Validate checks that the model name is set and every tuning knob is
// inside its documented range.
func (m *ModelConfig) Validate() error {
	if m.Name == "" {
		return &ValidationError{Field: "llms.name", Reason: "must not be empty"}
	}
	if m.Temperature != nil && (*m.Temperature < 0 || *m.Temperature > 2) {
		return &ValidationError{
			Field:  "llms.temperature",
			Reason: fmt.Sprintf("%g outside [0, 2]", *m.Temperature),
		}
	}
	if m.MaxTokens != nil && *m.MaxTokens <= 0 {
		return &ValidationError{
			Field:  "llms.max_tokens",
			Reason: fmt.Sprintf("%d is not positive", *m.MaxTokens),
		}
	}
	if m.TopP != nil && (*m.TopP < 0 || *m.TopP > 1) {
		return &ValidationError{
			Field:  "llms.top_p",
			Reason: fmt.Sprintf("%g outside [0, 1]", *m.TopP),
		}
	}
	if m.FrequencyPenalty != nil && (*m.FrequencyPenalty < -2 || *m.FrequencyPenalty > 2) {
		return &ValidationError{
			Field:  "llms.frequency_penalty",
			Reason: fmt.Sprintf("%g outside [-2, 2]", *m.FrequencyPenalty),
		}
	}
	if m.PresencePenalty != nil && (*m.PresencePenalty < -2 || *m.PresencePenalty > 2) {
		return &ValidationError{
			Field:  "llms.presence_penalty",
			Reason: fmt.Sprintf("%g outside [-2, 2]", *m.PresencePenalty),
		}
	}

	return nil
}
