package assistant

import (
	"dukaan/model"
	"dukaan/tools"
)

// Response is what a completed SendMessage turn hands back to the UI:
// the model's natural-language reply, the raw tool results for callers that
// want to inspect them, and any artifacts extracted along the way.
//
// Content is always set. When the turn failed at the transport level it
// holds a fixed apology rather than an error.
//
// Transcript holds the messages the tool phase added to the conversation:
// the assistant tool_calls message followed by one tool-role message per
// executed call, in call order. Callers that keep their own history must
// persist these between the user message and the final reply, so resumed
// sessions replay a well-formed transcript to the model.
type Response struct {
	Content     string
	ToolResults []tools.Result
	Artifacts   Artifacts
	Transcript  []model.Message
}
