package assistant

import (
	"reflect"
	"testing"

	"dukaan/tools"
)

func TestExtractQRStripsDataURIPrefix(t *testing.T) {
	result := tools.OK(tools.ToolGenerateUPIQR, map[string]any{
		"qr_image_base64": "data:image/png;base64,AAAA",
	})

	got := Extract(tools.ToolGenerateUPIQR, result)
	if got.QRCode != "AAAA" {
		t.Errorf("QRCode = %q, want %q", got.QRCode, "AAAA")
	}

	// Idempotence: extracting the same input again yields the same output
	again := Extract(tools.ToolGenerateUPIQR, result)
	if !reflect.DeepEqual(got, again) {
		t.Errorf("second Extract() differs: %+v vs %+v", got, again)
	}
}

func TestExtractQRBareBase64(t *testing.T) {
	result := tools.OK(tools.ToolGenerateUPIQR, map[string]any{"qr_image_base64": "BBBB"})

	got := Extract(tools.ToolGenerateUPIQR, result)
	if got.QRCode != "BBBB" {
		t.Errorf("QRCode = %q, want %q", got.QRCode, "BBBB")
	}
}

func TestExtractQRGatedOnToolName(t *testing.T) {
	result := tools.OK(tools.ToolGetProducts, map[string]any{"qr_image_base64": "AAAA"})

	got := Extract(tools.ToolGetProducts, result)
	if got.QRCode != "" {
		t.Errorf("QRCode = %q, want empty for non-QR tool", got.QRCode)
	}
}

func TestExtractPDFFieldPriority(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   string
	}{
		{"pdf_base64 first", map[string]any{"pdf_base64": "A", "pdfData": "B", "pdf": "C"}, "A"},
		{"pdfData second", map[string]any{"pdfData": "B", "pdf": "C", "base64": "D"}, "B"},
		{"pdf third", map[string]any{"pdf": "C", "base64": "D"}, "C"},
		{"base64 last", map[string]any{"base64": "D"}, "D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tools.ToolGenerateReportPDF, tools.OK(tools.ToolGenerateReportPDF, tt.fields))
			if got.PDFData != tt.want {
				t.Errorf("PDFData = %q, want %q", got.PDFData, tt.want)
			}
		})
	}
}

func TestExtractPDFURL(t *testing.T) {
	result := tools.OK(tools.ToolGenerateReportPDF, map[string]any{
		"pdf_url": "https://cdn.dukaan.app/r/1.pdf",
	})

	got := Extract(tools.ToolGenerateReportPDF, result)
	if got.PDFURL != "https://cdn.dukaan.app/r/1.pdf" {
		t.Errorf("PDFURL = %q", got.PDFURL)
	}
}

func TestExtractDocument(t *testing.T) {
	fields := map[string]any{
		"isDocument": true,
		"docType":    "report",
		"title":      "Weekly sales",
	}

	got := Extract(tools.ToolGenerateCustomPDF, tools.OK(tools.ToolGenerateCustomPDF, fields))
	if got.Document == nil {
		t.Fatal("Document = nil, want full result object")
	}
	if got.Document["docType"] != "report" {
		t.Errorf("Document docType = %v", got.Document["docType"])
	}

	// Falsy isDocument does not promote
	got = Extract(tools.ToolGenerateCustomPDF, tools.OK(tools.ToolGenerateCustomPDF, map[string]any{"isDocument": false}))
	if got.Document != nil {
		t.Error("Document set despite isDocument=false")
	}
}

func TestExtractNavigation(t *testing.T) {
	result := tools.OK(tools.ToolOpenAppScreen, map[string]any{
		"success":          true,
		"navigationAction": NavOpenScreen,
		"navigationData":   map[string]any{"screen": "billing"},
	})

	got := Extract(tools.ToolOpenAppScreen, result)
	if got.NavigationAction != NavOpenScreen {
		t.Errorf("NavigationAction = %q, want %q", got.NavigationAction, NavOpenScreen)
	}
	data, ok := got.NavigationData.(map[string]any)
	if !ok || data["screen"] != "billing" {
		t.Errorf("NavigationData = %v", got.NavigationData)
	}
}

func TestExtractNonObjectPayload(t *testing.T) {
	result := tools.OK(tools.ToolGetProducts, []any{"not", "an", "object"})

	got := Extract(tools.ToolGetProducts, result)
	if !got.Empty() {
		t.Errorf("Extract() on array payload = %+v, want empty", got)
	}
}

func TestMergeLastWriteWins(t *testing.T) {
	var bundle Artifacts

	bundle.Merge(Artifacts{PDFData: "first", QRCode: "QQ"})
	bundle.Merge(Artifacts{PDFData: "second"})

	if bundle.PDFData != "second" {
		t.Errorf("PDFData = %q, want %q", bundle.PDFData, "second")
	}
	if bundle.QRCode != "QQ" {
		t.Errorf("QRCode = %q, earlier field should survive unrelated merge", bundle.QRCode)
	}
}
