package assistant

import (
	"context"
	"strings"
	"time"

	"dukaan/config"
	"dukaan/model"
	"dukaan/tools"
)

// apology is the fixed reply surfaced when the model transport fails. The
// user always gets natural language back, never an error string.
const apology = "Sorry, I'm having trouble responding right now. Please try again in a moment."

// turnPhase makes the two-phase exchange structural: a turn either finishes
// after the first model call or walks the full
// awaitingFirst -> executingTools -> awaitingFinal -> done path. The
// re-prompt after tool execution is not something a caller can forget.
type turnPhase int

const (
	phaseAwaitingFirst turnPhase = iota
	phaseExecutingTools
	phaseAwaitingFinal
	phaseDone
)

// SessionInfo exposes the current authentication state to the orchestrator.
// config.AuthSession implements it.
type SessionInfo interface {
	CurrentUserID() string
}

// Orchestrator owns the conversation loop with the language model: one call
// with the tool catalog attached, tool execution, and a second call over the
// extended transcript to produce the natural-language reply.
type Orchestrator struct {
	provider model.Provider
	executor *Executor
	profiles *config.ProfileStore
	session  SessionInfo
}

func NewOrchestrator(provider model.Provider, executor *Executor, profiles *config.ProfileStore, session SessionInfo) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		executor: executor,
		profiles: profiles,
		session:  session,
	}
}

// BusinessSummary runs the app-state aggregation directly, outside a model
// turn. The UI's dashboard command uses it; offline it serves the cached
// snapshot the same way a model-requested get_app_state would.
func (o *Orchestrator) BusinessSummary(ctx context.Context) tools.Result {
	ec := ExecContext{
		UserID:  o.session.CurrentUserID(),
		Profile: o.profiles.Get(),
	}
	return o.executor.Execute(ctx, tools.ToolGetAppState, nil, ec)
}

// SendMessage runs one full conversation turn. The returned Response always
// carries Content; transport failures at either model call degrade to a
// fixed apology instead of an error. Exactly two model calls happen on a
// tool-using turn regardless of how many tools the model requested, and the
// second call has no tools attached so the model can only summarize.
func (o *Orchestrator) SendMessage(ctx context.Context, userText string, history []model.Message) *Response {
	profile := o.profiles.Get()
	ec := ExecContext{
		UserID:  o.session.CurrentUserID(),
		Profile: profile,
	}

	messages := make([]model.Message, 0, len(history)+2)
	messages = append(messages, model.Message{
		Role:      "system",
		Content:   BuildSystemPrompt(profile),
		Timestamp: time.Now(),
	})
	messages = append(messages, history...)
	messages = append(messages, model.Message{
		Role:      "user",
		Content:   userText,
		Timestamp: time.Now(),
	})

	resp := &Response{}

	var assistantText strings.Builder
	var toolCalls []model.ToolCall

	for phase := phaseAwaitingFirst; phase != phaseDone; {
		switch phase {
		case phaseAwaitingFirst:
			err := o.provider.ChatWithTools(ctx, messages, tools.Registry(),
				func(chunk string, calls []model.ToolCall) error {
					assistantText.WriteString(chunk)
					toolCalls = append(toolCalls, calls...)
					return nil
				})
			if err != nil {
				if config.DebugLog != nil {
					config.DebugLog.Printf("[orchestrator] first model call failed: %v", err)
				}
				resp.Content = apology
				return resp
			}

			if len(toolCalls) == 0 {
				// Single-phase turn: the model answered in plain text.
				resp.Content = assistantText.String()
				phase = phaseDone
				break
			}
			phase = phaseExecutingTools

		case phaseExecutingTools:
			// Tool results are appended in tool_calls order; the model API
			// requires each tool message to correlate to its requesting id.
			resp.Transcript = append(resp.Transcript, model.Message{
				Role:      "assistant",
				ToolCalls: toolCalls,
				Timestamp: time.Now(),
			})

			for _, call := range toolCalls {
				// Re-read the profile per call: a settings update earlier in
				// this turn must be visible to the tools that follow it.
				ec.Profile = o.profiles.Get()
				result := o.executor.Execute(ctx, call.Name, call.Arguments, ec)
				resp.ToolResults = append(resp.ToolResults, result)
				resp.Artifacts.Merge(Extract(call.Name, result))

				resp.Transcript = append(resp.Transcript, model.Message{
					Role:       "tool",
					Content:    result.JSON(),
					ToolCallID: call.ID,
					ToolName:   call.Name,
					Timestamp:  time.Now(),
				})
			}
			messages = append(messages, resp.Transcript...)
			phase = phaseAwaitingFinal

		case phaseAwaitingFinal:
			var finalText strings.Builder
			err := o.provider.Chat(ctx, messages,
				func(chunk string, _ []model.ToolCall) error {
					finalText.WriteString(chunk)
					return nil
				})
			if err != nil {
				if config.DebugLog != nil {
					config.DebugLog.Printf("[orchestrator] final model call failed: %v", err)
				}
				resp.Content = apology
				return resp
			}

			resp.Content = finalText.String()
			phase = phaseDone
		}
	}

	return resp
}
