package ui

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dukaan/assistant"
)

// SaveArtifacts writes binary artifacts to the cache directory and returns
// display lines for the chat transcript. A QR image becomes a PNG file, PDF
// bytes become a .pdf file, a PDF URL and navigation actions become hint
// lines. Decode failures produce an error line instead of aborting the turn.
func SaveArtifacts(cacheDir string, artifacts assistant.Artifacts) []string {
	var lines []string

	if artifacts.QRCode != "" {
		path, err := saveBase64(cacheDir, "qr", ".png", artifacts.QRCode)
		if err != nil {
			lines = append(lines, ErrorStyle.Render("Could not save QR image: "+err.Error()))
		} else {
			lines = append(lines, ArtifactStyle.Render("QR code saved: "+path))
		}
	}

	if artifacts.PDFData != "" {
		path, err := saveBase64(cacheDir, "document", ".pdf", artifacts.PDFData)
		if err != nil {
			lines = append(lines, ErrorStyle.Render("Could not save PDF: "+err.Error()))
		} else {
			lines = append(lines, ArtifactStyle.Render("PDF saved: "+path))
		}
	}

	if artifacts.PDFURL != "" {
		lines = append(lines, ArtifactStyle.Render("PDF available: "+artifacts.PDFURL))
	}

	if artifacts.Document != nil {
		docType, _ := artifacts.Document["docType"].(string)
		if docType == "" {
			docType = "document"
		}
		lines = append(lines, ArtifactStyle.Render("Generated a "+docType))
	}

	if artifacts.NavigationAction != "" {
		lines = append(lines, DimStyle.Render("(navigation: "+artifacts.NavigationAction+")"))
	}

	return lines
}

func saveBase64(cacheDir, prefix, ext, data string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("invalid base64 payload: %w", err)
	}

	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", prefix, time.Now().Format("20060102-150405"), ext)
	path := filepath.Join(cacheDir, name)

	if err := os.WriteFile(path, decoded, 0600); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	return path, nil
}
