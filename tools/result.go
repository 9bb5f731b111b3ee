package tools

import "encoding/json"

// Result is the value produced by every tool execution. Failures are values,
// never panics or errors crossing the orchestration boundary: a failed tool
// still serializes into a tool-role message so the model can react to it in
// natural language.
type Result struct {
	Tool    string `json:"tool"`
	Payload any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK wraps a successful payload.
func OK(tool string, payload any) Result {
	return Result{Tool: tool, Payload: payload}
}

// Failure wraps an error with a short code-like string and a human-readable
// message the model can relay to the user.
func Failure(tool, errMsg, message string) Result {
	return Result{Tool: tool, Error: errMsg, Message: message}
}

// Failed reports whether the execution produced an error.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Fields returns the payload as a field map when it is a JSON object,
// or nil otherwise. Used by the artifact extractor.
func (r Result) Fields() map[string]any {
	m, ok := r.Payload.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// JSON serializes the result for a tool-role message. Marshal failures
// degrade to an error shape instead of propagating.
func (r Result) JSON() string {
	data, err := json.Marshal(r)
	if err != nil {
		fallback, _ := json.Marshal(Result{
			Tool:    r.Tool,
			Error:   "serialization_failed",
			Message: err.Error(),
		})
		return string(fallback)
	}
	return string(data)
}
