package sink

import (
	"os"

	"github.com/gomarkdown/markdown"

	"gohypo-sis/internal/errors"
)

// WriteHTMLSummary renders a markdown run summary (built by app.Driver) to
// HTML using the teacher's markdown renderer.
func WriteHTMLSummary(path string, md string) error {
	html := markdown.ToHTML([]byte(md), nil, nil)
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return errors.IOError("writing "+path, err)
	}
	return nil
}
