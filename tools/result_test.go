package tools

import (
	"encoding/json"
	"testing"
)

func TestResultJSON(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		validate func(t *testing.T, decoded map[string]any)
	}{
		{
			name:   "success payload",
			result: OK(ToolGetProducts, map[string]any{"count": 3}),
			validate: func(t *testing.T, decoded map[string]any) {
				if decoded["tool"] != ToolGetProducts {
					t.Errorf("tool: got %v", decoded["tool"])
				}
				payload, ok := decoded["result"].(map[string]any)
				if !ok {
					t.Fatalf("result field missing or wrong type: %v", decoded["result"])
				}
				if payload["count"] != float64(3) {
					t.Errorf("count: got %v", payload["count"])
				}
				if _, ok := decoded["error"]; ok {
					t.Error("error field present on success")
				}
			},
		},
		{
			name:   "failure shape",
			result: Failure(ToolGenerateUPIQR, "UPI ID not configured", "Please set your UPI ID in Settings first."),
			validate: func(t *testing.T, decoded map[string]any) {
				if decoded["error"] != "UPI ID not configured" {
					t.Errorf("error: got %v", decoded["error"])
				}
				if decoded["message"] != "Please set your UPI ID in Settings first." {
					t.Errorf("message: got %v", decoded["message"])
				}
				if _, ok := decoded["result"]; ok {
					t.Error("result field present on failure")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(tt.result.JSON()), &decoded); err != nil {
				t.Fatalf("result JSON does not parse: %v", err)
			}
			tt.validate(t, decoded)
		})
	}
}

func TestResultFailed(t *testing.T) {
	if OK("x", nil).Failed() {
		t.Error("success reported as failed")
	}
	if !Failure("x", "boom", "it broke").Failed() {
		t.Error("failure not reported as failed")
	}
}

func TestResultFields(t *testing.T) {
	r := OK("x", map[string]any{"qr_image_base64": "AAAA"})
	if r.Fields()["qr_image_base64"] != "AAAA" {
		t.Error("Fields did not expose payload map")
	}

	if OK("x", "plain string").Fields() != nil {
		t.Error("Fields on non-object payload should be nil")
	}
	if OK("x", nil).Fields() != nil {
		t.Error("Fields on nil payload should be nil")
	}
}
