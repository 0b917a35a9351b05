// Package aios provides the typed wire contract and HTTP client for
// AIOS-compatible agent kernels. Queries describe what an agent should do
// (chat, call tools, operate on files); responses carry the generated
// message, any tool activity, and the kernel's completion status.
package aios

import "fmt"

// QueryClassLLM identifies LLM queries on the wire.
const QueryClassLLM = "llm"

// Action kinds accepted by kernels.
const (
	ActionChat        = "chat"
	ActionToolUse     = "tool_use"
	ActionOperateFile = "operate_file"
)

// Message roles accepted by kernels.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultReturnType is the message_return_type sent when a query doesn't
// ask for anything else.
const DefaultReturnType = "text"

// Query represents a request for an agent to perform an LLM-backed action.
type Query struct {
	// QueryClass is always "llm" for queries built by this package.
	QueryClass string `json:"query_class"`

	// LLMs selects and tunes the models the kernel may run the query with.
	LLMs []ModelConfig `json:"llms,omitempty"`

	// Messages is the conversation so far, oldest first. Must be non-empty.
	Messages []Message `json:"messages"`

	// Tools the kernel may call while satisfying the query.
	Tools []ToolDescriptor `json:"tools,omitempty"`

	// ActionType is one of ActionChat, ActionToolUse, ActionOperateFile.
	ActionType string `json:"action_type"`

	// MessageReturnType tags the desired response format (e.g. "text", "json").
	MessageReturnType string `json:"message_return_type,omitempty"`
}

// Message represents a single role-tagged message in a conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`

	// Name optionally identifies the message sender.
	Name string `json:"name,omitempty"`

	// ToolCalls annotates assistant messages with tool invocations made
	// earlier in the conversation.
	ToolCalls []MessageToolCall `json:"tool_calls,omitempty"`

	// FileOperations annotates assistant messages with file edits made
	// earlier in the conversation.
	FileOperations []FileOperation `json:"file_operations,omitempty"`
}

// MessageToolCall records a tool invocation inside a conversation message.
type MessageToolCall struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// FileOperation records a file edit inside a conversation message.
type FileOperation struct {
	Operation string `json:"operation"` // e.g. "write", "modify"
	FilePath  string `json:"file_path"`
	Content   string `json:"content,omitempty"`
}

// NewMessage creates a simple message with the given role and content.
func NewMessage(role, content string) Message {
	return Message{Role: role, Content: content}
}

// NewQuery builds a validated Query for the given action. Tools and models
// may be nil. Returns a *ValidationError if the query violates the wire
// contract.
func NewQuery(actionType string, messages []Message, tools []ToolDescriptor, models []ModelConfig) (*Query, error) {
	q := &Query{
		QueryClass:        QueryClassLLM,
		LLMs:              models,
		Messages:          messages,
		Tools:             tools,
		ActionType:        actionType,
		MessageReturnType: DefaultReturnType,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks the query against the kernel wire contract. Violations
// are reported as *ValidationError; nothing is silently corrected.
func (q *Query) Validate() error {
	if len(q.Messages) == 0 {
		return &ValidationError{Field: "messages", Reason: "must not be empty"}
	}

	for i, m := range q.Messages {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return &ValidationError{
				Field:  fmt.Sprintf("messages[%d].role", i),
				Reason: fmt.Sprintf("unknown role %q (valid: %s, %s, %s)", m.Role, RoleSystem, RoleUser, RoleAssistant),
			}
		}
	}

	switch q.ActionType {
	case ActionChat, ActionToolUse, ActionOperateFile:
	default:
		return &ValidationError{
			Field:  "action_type",
			Reason: fmt.Sprintf("unknown action %q (valid: %s, %s, %s)", q.ActionType, ActionChat, ActionToolUse, ActionOperateFile),
		}
	}

	for i, t := range q.Tools {
		if t.Name == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("tools[%d].name", i),
				Reason: "must not be empty",
			}
		}
		if t.Description == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("tools[%d].description", i),
				Reason: "must not be empty",
			}
		}
	}

	for i := range q.LLMs {
		if err := q.LLMs[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
