package assistant

import (
	"strings"

	"dukaan/tools"
)

// Artifacts are the side-channel payloads a tool result can carry alongside
// its JSON body: a QR image, a PDF (bytes or URL), a structured document, or
// a navigation instruction. The UI renders these directly; the model only
// ever sees the serialized result text.
type Artifacts struct {
	QRCode           string         // bare base64 PNG
	PDFData          string         // base64-encoded PDF bytes
	PDFURL           string         // remote PDF location
	Document         map[string]any // full result object when isDocument is set
	NavigationAction string
	NavigationData   any
}

// Empty reports whether no artifact field is populated.
func (a Artifacts) Empty() bool {
	return a.QRCode == "" && a.PDFData == "" && a.PDFURL == "" &&
		a.Document == nil && a.NavigationAction == ""
}

// Merge overlays other onto a, field by field. Populated fields in other win;
// within a turn this gives last-write-wins across tool calls in call order.
func (a *Artifacts) Merge(other Artifacts) {
	if other.QRCode != "" {
		a.QRCode = other.QRCode
	}
	if other.PDFData != "" {
		a.PDFData = other.PDFData
	}
	if other.PDFURL != "" {
		a.PDFURL = other.PDFURL
	}
	if other.Document != nil {
		a.Document = other.Document
	}
	if other.NavigationAction != "" {
		a.NavigationAction = other.NavigationAction
		a.NavigationData = other.NavigationData
	}
}

const qrDataURIPrefix = "data:image/png;base64,"

// Field aliases the backend uses across tool implementations, in priority
// order. The first populated alias wins.
var (
	pdfDataFields = []string{"pdf_base64", "pdfData", "pdf", "base64"}
	pdfURLFields  = []string{"pdf_url", "pdfUrl", "url"}
)

// Extract scans one tool result for artifact shapes. It is pure: the same
// input always yields the same output, and the result is never mutated.
// Each shape predicate runs independently; a single result may populate
// several artifact fields.
func Extract(toolName string, result tools.Result) Artifacts {
	var out Artifacts

	fields := result.Fields()
	if fields == nil {
		return out
	}

	// QR extraction is gated on the generating tool; other tools returning
	// a qr_image_base64 field are not trusted as QR sources.
	if toolName == tools.ToolGenerateUPIQR {
		if qr, ok := fields["qr_image_base64"].(string); ok && qr != "" {
			out.QRCode = strings.TrimPrefix(qr, qrDataURIPrefix)
		}
	}

	out.PDFData = firstString(fields, pdfDataFields)
	out.PDFURL = firstString(fields, pdfURLFields)

	if isTruthy(fields["isDocument"]) {
		out.Document = fields
	}

	if action, ok := fields["navigationAction"].(string); ok && action != "" {
		out.NavigationAction = action
		out.NavigationData = fields["navigationData"]
	}

	return out
}

func firstString(fields map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := fields[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func isTruthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case nil:
		return false
	default:
		return true
	}
}
