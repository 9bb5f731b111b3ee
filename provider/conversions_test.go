package provider

import (
	"testing"

	"dukaan/model"
)

func TestParseToolArguments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKey  string
		wantVal  any
		wantSize int
	}{
		{"valid json", `{"amount": 500}`, "amount", 500.0, 1},
		{"empty object", `{}`, "", nil, 0},
		{"malformed json", `{"amount":`, "", nil, 0},
		{"empty string", ``, "", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseToolArguments(tt.input)

			if got == nil {
				t.Fatal("ParseToolArguments() returned nil, want non-nil map")
			}
			if len(got) != tt.wantSize {
				t.Errorf("len = %d, want %d", len(got), tt.wantSize)
			}
			if tt.wantKey != "" && got[tt.wantKey] != tt.wantVal {
				t.Errorf("got[%q] = %v, want %v", tt.wantKey, got[tt.wantKey], tt.wantVal)
			}
		})
	}
}

func TestConvertToOpenAIMessagesRoles(t *testing.T) {
	messages := []model.Message{
		{Role: "system", Content: "You are a shop assistant"},
		{Role: "user", Content: "add 5kg rice"},
		{Role: "assistant", ToolCalls: []model.ToolCall{
			{ID: "call_1", Name: "add_product", Arguments: map[string]any{"name": "rice"}},
		}},
		{Role: "tool", ToolCallID: "call_1", ToolName: "add_product", Content: `{"tool":"add_product"}`},
		{Role: "assistant", Content: "Added rice to your inventory."},
	}

	result := ConvertToOpenAIMessages(messages)

	if len(result) != 5 {
		t.Fatalf("len = %d, want 5", len(result))
	}

	if result[0].OfSystem == nil {
		t.Error("message 0 not a system param")
	}
	if result[1].OfUser == nil {
		t.Error("message 1 not a user param")
	}

	assistant := result[2].OfAssistant
	if assistant == nil {
		t.Fatal("message 2 not an assistant param")
	}
	if len(assistant.ToolCalls) != 1 {
		t.Fatalf("assistant tool calls = %d, want 1", len(assistant.ToolCalls))
	}
	call := assistant.ToolCalls[0].OfFunction
	if call == nil || call.ID != "call_1" {
		t.Errorf("tool call id not preserved: %+v", assistant.ToolCalls[0])
	}
	if call.Function.Name != "add_product" {
		t.Errorf("tool call name = %q", call.Function.Name)
	}
	if call.Function.Arguments != `{"name":"rice"}` {
		t.Errorf("tool call arguments = %q", call.Function.Arguments)
	}

	toolMsg := result[3].OfTool
	if toolMsg == nil {
		t.Fatal("message 3 not a tool param")
	}
	if toolMsg.ToolCallID != "call_1" {
		t.Errorf("tool message id = %q, want call_1", toolMsg.ToolCallID)
	}

	if result[4].OfAssistant == nil {
		t.Error("message 4 not an assistant param")
	}
}

func TestConvertToOpenAIMessagesNilArguments(t *testing.T) {
	messages := []model.Message{
		{Role: "assistant", ToolCalls: []model.ToolCall{{ID: "call_1", Name: "open_scanner"}}},
	}

	result := ConvertToOpenAIMessages(messages)

	call := result[0].OfAssistant.ToolCalls[0].OfFunction
	if call.Function.Arguments != "{}" {
		t.Errorf("nil arguments serialized as %q, want {}", call.Function.Arguments)
	}
}

func TestConvertToAnthropicMessagesSystemSeparation(t *testing.T) {
	messages := []model.Message{
		{Role: "system", Content: "You are a shop assistant"},
		{Role: "user", Content: "hello"},
	}

	anthropicMsgs, systemBlocks := convertToAnthropicMessages(messages)

	if len(systemBlocks) != 1 || systemBlocks[0].Text != "You are a shop assistant" {
		t.Errorf("system blocks = %+v", systemBlocks)
	}
	if len(anthropicMsgs) != 1 {
		t.Errorf("messages = %d, want 1 (system excluded)", len(anthropicMsgs))
	}
}

func TestConvertToAnthropicMessagesToolFlow(t *testing.T) {
	messages := []model.Message{
		{Role: "user", Content: "make a QR for 500"},
		{Role: "assistant", ToolCalls: []model.ToolCall{
			{ID: "toolu_1", Name: "generate_upi_qr", Arguments: map[string]any{"amount": 500.0}},
		}},
		{Role: "tool", ToolCallID: "toolu_1", Content: `{"tool":"generate_upi_qr"}`},
	}

	anthropicMsgs, _ := convertToAnthropicMessages(messages)

	if len(anthropicMsgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(anthropicMsgs))
	}
	if anthropicMsgs[1].Role != "assistant" {
		t.Errorf("message 1 role = %q, want assistant", anthropicMsgs[1].Role)
	}
	// Tool results ride in a user-role message
	if anthropicMsgs[2].Role != "user" {
		t.Errorf("message 2 role = %q, want user", anthropicMsgs[2].Role)
	}
}

func TestConvertToOllamaMessages(t *testing.T) {
	messages := []model.Message{
		{Role: "user", Content: "show products"},
		{Role: "assistant", ToolCalls: []model.ToolCall{
			{ID: "call_x", Name: "get_products", Arguments: map[string]any{}},
		}},
		{Role: "tool", ToolCallID: "call_x", Content: `{"tool":"get_products"}`},
	}

	result := ConvertToOllamaMessages(messages)

	if len(result) != 3 {
		t.Fatalf("len = %d, want 3", len(result))
	}
	if result[0].Role != "user" || result[0].Content != "show products" {
		t.Errorf("message 0 = %+v", result[0])
	}
	if len(result[1].ToolCalls) != 1 || result[1].ToolCalls[0].Function.Name != "get_products" {
		t.Errorf("assistant tool calls not converted: %+v", result[1].ToolCalls)
	}
	if result[2].Role != "tool" {
		t.Errorf("message 2 role = %q, want tool", result[2].Role)
	}
}
