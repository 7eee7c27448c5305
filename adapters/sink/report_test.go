package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHTMLSummaryRendersMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.html")

	require.NoError(t, WriteHTMLSummary(path, "# Run abc\n\n- N=10\n"))

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Run abc</h1>")
	assert.Contains(t, string(html), "<li>N=10</li>")
}
