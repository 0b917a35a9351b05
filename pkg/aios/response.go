package aios

import "net/http"

// ResponseClassLLM identifies LLM responses on the wire.
const ResponseClassLLM = "llm"

// Response is what a kernel sends back for a query. Every transport path
// in this package yields a well-formed Response; when the kernel could not
// be reached or replied with garbage, Finished is false and Error explains
// what happened.
type Response struct {
	// ResponseClass is "llm" for responses produced by LLM agents.
	ResponseClass string `json:"response_class,omitempty"`

	// ResponseMessage is the generated text, if any.
	ResponseMessage string `json:"response_message,omitempty"`

	// ToolCalls lists the tool invocations the agent performed.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// Finished reports whether the agent considers the task complete.
	// Defaults to false; absence of evidence is not completion.
	Finished bool `json:"finished"`

	// Error carries a human-readable failure description, empty on success.
	Error string `json:"error,omitempty"`

	// StatusCode is the HTTP-style status of the exchange: 200 on success,
	// the observed status for kernel-reported failures, and
	// StatusTransportFailure when no kernel status is available.
	StatusCode int `json:"status_code"`
}

// ToolCall records one tool invocation the agent performed, with whatever
// result the tool produced.
type ToolCall struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Result     any            `json:"result,omitempty"`
}

// NewResponse creates a Response with the wire defaults: class "llm",
// unfinished, status 200.
func NewResponse() *Response {
	return &Response{
		ResponseClass: ResponseClassLLM,
		StatusCode:    http.StatusOK,
	}
}

// Succeeded reports whether the exchange completed with a 2xx status and
// no error.
func (r *Response) Succeeded() bool {
	return r.Error == "" && r.StatusCode >= 200 && r.StatusCode <= 299
}
