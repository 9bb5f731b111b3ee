package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dukaan/config"
	"dukaan/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// scriptedProvider replays canned model turns and records everything it was
// sent so tests can assert on transcript shape and call counts.
type scriptedProvider struct {
	firstText      string
	firstToolCalls []model.ToolCall
	firstErr       error

	finalText string
	finalErr  error

	toolCallCount  int // ChatWithTools invocations
	plainCallCount int // Chat invocations

	toolCallMessages  []model.Message
	toolCallTools     []mcptypes.Tool
	plainCallMessages []model.Message
}

func (s *scriptedProvider) Chat(_ context.Context, messages []model.Message, callback model.StreamCallback) error {
	s.plainCallCount++
	s.plainCallMessages = messages
	if s.finalErr != nil {
		return s.finalErr
	}
	return callback(s.finalText, nil)
}

func (s *scriptedProvider) ChatWithTools(_ context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	s.toolCallCount++
	s.toolCallMessages = messages
	s.toolCallTools = tools
	if s.firstErr != nil {
		return s.firstErr
	}
	if s.firstText != "" {
		if err := callback(s.firstText, nil); err != nil {
			return err
		}
	}
	if len(s.firstToolCalls) > 0 {
		return callback("", s.firstToolCalls)
	}
	return nil
}

func (s *scriptedProvider) ListModels(_ context.Context) ([]model.ModelInfo, error) { return nil, nil }
func (s *scriptedProvider) GetModel() string                                       { return "scripted" }
func (s *scriptedProvider) GetDisplayName() string                                 { return "scripted" }
func (s *scriptedProvider) SetModel(string)                                        {}
func (s *scriptedProvider) Ping(_ context.Context) error                           { return nil }

type staticSession struct{ userID string }

func (s staticSession) CurrentUserID() string { return s.userID }

func newTestOrchestrator(t *testing.T, provider model.Provider, remote *fakeToolService, session SessionInfo) *Orchestrator {
	t.Helper()

	profiles, err := config.LoadProfileStore(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProfileStore() error = %v", err)
	}

	executor := NewExecutor(remote, &fakeDataService{}, profiles, nil)
	return NewOrchestrator(provider, executor, profiles, session)
}

func TestSendMessageSinglePhase(t *testing.T) {
	provider := &scriptedProvider{firstText: "Hello! How can I help with your shop today?"}
	orch := newTestOrchestrator(t, provider, &fakeToolService{}, staticSession{"user-7"})

	resp := orch.SendMessage(context.Background(), "hi", nil)

	if resp.Content != "Hello! How can I help with your shop today?" {
		t.Errorf("Content = %q", resp.Content)
	}
	if provider.toolCallCount != 1 || provider.plainCallCount != 0 {
		t.Errorf("model calls = %d tool-attached, %d plain; want 1, 0",
			provider.toolCallCount, provider.plainCallCount)
	}
	if len(resp.ToolResults) != 0 {
		t.Errorf("ToolResults = %d, want 0", len(resp.ToolResults))
	}

	// First message of the transcript is the system prompt
	if len(provider.toolCallMessages) < 2 || provider.toolCallMessages[0].Role != "system" {
		t.Error("transcript does not start with a system message")
	}
	if len(provider.toolCallTools) == 0 {
		t.Error("first call had no tool catalog attached")
	}
}

func TestSendMessageTwoPhase(t *testing.T) {
	provider := &scriptedProvider{
		firstToolCalls: []model.ToolCall{
			{ID: "call_1", Name: "get_products", Arguments: map[string]any{}},
			{ID: "call_2", Name: "generate_custom_pdf", Arguments: map[string]any{"title": "Stock list", "content": "..."}},
		},
		finalText: "I fetched your products and made the PDF.",
	}
	remote := &fakeToolService{payload: map[string]any{"ok": true}}
	orch := newTestOrchestrator(t, provider, remote, staticSession{"user-7"})

	resp := orch.SendMessage(context.Background(), "make a stock list pdf", nil)

	// Exactly two model calls, second one without tools
	if provider.toolCallCount != 1 || provider.plainCallCount != 1 {
		t.Fatalf("model calls = %d tool-attached, %d plain; want 1, 1",
			provider.toolCallCount, provider.plainCallCount)
	}
	if resp.Content != "I fetched your products and made the PDF." {
		t.Errorf("Content = %q", resp.Content)
	}
	if len(resp.ToolResults) != 2 {
		t.Fatalf("ToolResults = %d, want 2", len(resp.ToolResults))
	}
	if len(remote.calls) != 2 {
		t.Fatalf("remote executions = %d, want 2", len(remote.calls))
	}
	if remote.calls[0].name != "get_products" || remote.calls[1].name != "generate_custom_pdf" {
		t.Errorf("execution order = %s, %s", remote.calls[0].name, remote.calls[1].name)
	}

	// Phase-two transcript: assistant tool_calls message, then one tool
	// message per call, ids matching and in call order
	msgs := provider.plainCallMessages
	if len(msgs) < 5 {
		t.Fatalf("phase-two transcript too short: %d messages", len(msgs))
	}

	assistantMsg := msgs[len(msgs)-3]
	if assistantMsg.Role != "assistant" || len(assistantMsg.ToolCalls) != 2 {
		t.Errorf("expected assistant tool_calls message, got role=%q calls=%d",
			assistantMsg.Role, len(assistantMsg.ToolCalls))
	}

	tool1, tool2 := msgs[len(msgs)-2], msgs[len(msgs)-1]
	if tool1.Role != "tool" || tool1.ToolCallID != "call_1" {
		t.Errorf("first tool message: role=%q id=%q", tool1.Role, tool1.ToolCallID)
	}
	if tool2.Role != "tool" || tool2.ToolCallID != "call_2" {
		t.Errorf("second tool message: role=%q id=%q", tool2.Role, tool2.ToolCallID)
	}
}

func TestSendMessageFirstCallFailure(t *testing.T) {
	provider := &scriptedProvider{firstErr: errors.New("connection refused")}
	orch := newTestOrchestrator(t, provider, &fakeToolService{}, staticSession{"user-7"})

	resp := orch.SendMessage(context.Background(), "hi", nil)

	if resp.Content != apology {
		t.Errorf("Content = %q, want apology", resp.Content)
	}
}

func TestSendMessageFinalCallFailure(t *testing.T) {
	provider := &scriptedProvider{
		firstToolCalls: []model.ToolCall{{ID: "call_1", Name: "get_products", Arguments: map[string]any{}}},
		finalErr:       errors.New("connection reset"),
	}
	remote := &fakeToolService{payload: map[string]any{"ok": true}}
	orch := newTestOrchestrator(t, provider, remote, staticSession{"user-7"})

	resp := orch.SendMessage(context.Background(), "show products", nil)

	if resp.Content != apology {
		t.Errorf("Content = %q, want apology", resp.Content)
	}
	// Tool work already done is still reported
	if len(resp.ToolResults) != 1 {
		t.Errorf("ToolResults = %d, want 1", len(resp.ToolResults))
	}
}

func TestSendMessageFailedToolStillReachesModel(t *testing.T) {
	provider := &scriptedProvider{
		firstToolCalls: []model.ToolCall{{ID: "call_1", Name: "delete_product", Arguments: map[string]any{"product_id": "p1"}}},
		finalText:      "I could not delete that product.",
	}
	remote := &fakeToolService{err: errors.New("Access denied. You do not have permission to perform this action.")}
	orch := newTestOrchestrator(t, provider, remote, staticSession{"user-7"})

	resp := orch.SendMessage(context.Background(), "delete product p1", nil)

	if resp.Content == apology {
		t.Fatal("a failed tool must not abort the turn")
	}

	toolMsg := provider.plainCallMessages[len(provider.plainCallMessages)-1]
	if toolMsg.Role != "tool" {
		t.Fatalf("last message role = %q, want tool", toolMsg.Role)
	}
	want := "Access denied. You do not have permission to perform this action."
	if !strings.Contains(toolMsg.Content, want) {
		t.Errorf("tool message %q does not carry the error verbatim", toolMsg.Content)
	}
}

func TestSendMessageNilArgumentsBecomeEmpty(t *testing.T) {
	provider := &scriptedProvider{
		firstToolCalls: []model.ToolCall{{ID: "call_1", Name: "get_products", Arguments: nil}},
		finalText:      "done",
	}
	remote := &fakeToolService{payload: map[string]any{"ok": true}}
	orch := newTestOrchestrator(t, provider, remote, staticSession{"user-7"})

	orch.SendMessage(context.Background(), "show products", nil)

	if len(remote.calls) != 1 {
		t.Fatalf("remote executions = %d, want 1", len(remote.calls))
	}
	// user_id injection proves the args bag was materialized
	if remote.calls[0].args["user_id"] != "user-7" {
		t.Errorf("args = %v, want injected user_id", remote.calls[0].args)
	}
}

func TestSendMessageExtractsArtifacts(t *testing.T) {
	provider := &scriptedProvider{
		firstToolCalls: []model.ToolCall{{ID: "call_1", Name: "generate_report_pdf", Arguments: map[string]any{"type": "daily"}}},
		finalText:      "Here is today's report.",
	}
	remote := &fakeToolService{payload: map[string]any{"pdf_base64": "JVBERi0x"}}
	orch := newTestOrchestrator(t, provider, remote, staticSession{"user-7"})

	resp := orch.SendMessage(context.Background(), "today's report", nil)

	if resp.Artifacts.PDFData != "JVBERi0x" {
		t.Errorf("PDFData = %q, want extracted base64", resp.Artifacts.PDFData)
	}
	if resp.Artifacts.Document != nil {
		t.Error("Document set for a plain PDF result")
	}
}

func TestBusinessSummaryOutsideModelTurn(t *testing.T) {
	provider := &scriptedProvider{}
	orch := newTestOrchestrator(t, provider, &fakeToolService{}, staticSession{"user-7"})

	result := orch.BusinessSummary(context.Background())

	if result.Failed() {
		t.Fatalf("BusinessSummary() error = %q", result.Error)
	}
	fields := result.Fields()
	if fields["product_count"] != 0 {
		t.Errorf("product_count = %v, want 0", fields["product_count"])
	}
	if provider.toolCallCount != 0 || provider.plainCallCount != 0 {
		t.Error("BusinessSummary must not call the model")
	}
}

func TestBusinessSummaryUnauthenticated(t *testing.T) {
	orch := newTestOrchestrator(t, &scriptedProvider{}, &fakeToolService{}, staticSession{""})

	result := orch.BusinessSummary(context.Background())

	if !result.Failed() {
		t.Fatal("BusinessSummary() succeeded without a session")
	}
	if result.Error != "User not authenticated" {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestSendMessageSettingsUpdateVisibleToLaterCalls(t *testing.T) {
	provider := &scriptedProvider{
		firstToolCalls: []model.ToolCall{
			{ID: "call_1", Name: "update_user_settings", Arguments: map[string]any{"upi_id": "fresh@upi", "name": "Ramesh"}},
			{ID: "call_2", Name: "generate_upi_qr", Arguments: map[string]any{"amount": 500.0}},
		},
		finalText: "Saved your UPI id and here is the QR.",
	}
	remote := &fakeToolService{payload: map[string]any{"qr_image_base64": "AAAA"}}
	orch := newTestOrchestrator(t, provider, remote, staticSession{"user-7"})

	resp := orch.SendMessage(context.Background(), "set my UPI id to fresh@upi and make a QR for 500", nil)

	if len(remote.calls) != 1 {
		t.Fatalf("remote executions = %d, want 1", len(remote.calls))
	}
	if got := remote.calls[0].args["payee_upi_id"]; got != "fresh@upi" {
		t.Errorf("payee_upi_id = %v, want the UPI id set earlier in the same turn", got)
	}
	if got := remote.calls[0].args["payee_name"]; got != "Ramesh" {
		t.Errorf("payee_name = %v, want Ramesh", got)
	}
	for _, r := range resp.ToolResults {
		if r.Failed() {
			t.Errorf("tool %s failed: %s", r.Tool, r.Error)
		}
	}
}

func TestSendMessageExposesToolTranscript(t *testing.T) {
	provider := &scriptedProvider{
		firstToolCalls: []model.ToolCall{
			{ID: "call_1", Name: "get_products", Arguments: map[string]any{}},
			{ID: "call_2", Name: "get_invoices", Arguments: map[string]any{}},
		},
		finalText: "Here is your inventory.",
	}
	remote := &fakeToolService{payload: map[string]any{"items": []any{}}}
	orch := newTestOrchestrator(t, provider, remote, staticSession{"user-7"})

	resp := orch.SendMessage(context.Background(), "show products and invoices", nil)

	if len(resp.Transcript) != 3 {
		t.Fatalf("Transcript length = %d, want 3", len(resp.Transcript))
	}
	carrier := resp.Transcript[0]
	if carrier.Role != "assistant" || len(carrier.ToolCalls) != 2 || carrier.Content != "" {
		t.Errorf("Transcript[0] = %+v, want empty-content assistant message with 2 tool calls", carrier)
	}
	for i, wantID := range []string{"call_1", "call_2"} {
		toolMsg := resp.Transcript[i+1]
		if toolMsg.Role != "tool" || toolMsg.ToolCallID != wantID {
			t.Errorf("Transcript[%d] = role %q id %q, want tool/%s", i+1, toolMsg.Role, toolMsg.ToolCallID, wantID)
		}
		if toolMsg.Content == "" {
			t.Errorf("Transcript[%d] has empty content", i+1)
		}
	}
}
