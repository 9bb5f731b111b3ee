package ui

import (
	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown renders assistant markdown for the terminal. Autolink is
// disabled so plain URLs stay plain text and the terminal emulator handles
// clickability itself.
func RenderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	customExt := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(width-4, 0)
	doc := p.Parse([]byte(content))

	return string(gomarkdown.Render(doc, r))
}
