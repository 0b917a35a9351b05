package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	sessionFile = "session.json"
)

// SessionState represents a persisted chat session.
// It records which agent the conversation was held with and the messages
// exchanged so far, so a later invocation can pick up where it left off.
type SessionState struct {
	// Agent is the kernel agent name the session was started against.
	Agent string `json:"agent"`

	// Messages is the conversation history in chronological order
	// (oldest first).
	Messages []SessionMessage `json:"messages"`
}

// SessionMessage represents a single message in the persisted session.
type SessionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LoadSessionState loads the session state from a target .cereb/session.json.
// Returns nil, nil if no session state exists (fresh conversation).
// If overrideDir is non-empty, it is used instead of the default ~/.cereb/ location.
func (m *Manager) LoadSessionState(overrideDir string) (*SessionState, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, sessionFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session state: %w", err)
	}

	state := &SessionState{}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing session state: %w", err)
	}

	return state, nil
}

// SaveSession persists the session state to a target .cereb/session.json.
func (m *Manager) SaveSession(state *SessionState, overrideDir string) error {
	if state == nil {
		return errors.New("cannot save nil session state")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session state: %w", err)
	}

	path := filepath.Join(dir, sessionFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session state: %w", err)
	}

	return nil
}

// ClearSession removes the session state file.
// This resets the state so the next chat starts a new conversation.
// If overrideDir is non-empty, it is used instead of the default ~/.cereb/ location.
// Returns nil if the file doesn't exist (already cleared).
func (m *Manager) ClearSession(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, sessionFile)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing session state: %w", err)
	}

	return nil
}
