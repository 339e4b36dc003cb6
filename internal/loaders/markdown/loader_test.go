package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripMarkdown(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"heading", "# Title\n\nBody text.", "Title\n\nBody text."},
		{"bold", "Some **bold** words", "Some bold words"},
		{"italic", "Some _italic_ words", "Some italic words"},
		{"link", "See [the docs](https://example.com) here", "See the docs here"},
		{"image", "![alt text](img.png)", "alt text"},
		{"inline code", "Run `mindsonic run` now", "Run mindsonic run now"},
		{"code fence dropped", "Before\n```go\nfunc main() {}\n```\nAfter", "Before\n\nAfter"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripMarkdown(tc.in))
		})
	}
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	loader := New()

	path := filepath.Join(t.TempDir(), "readme.md")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\n\nSome **content** here.\n"), 0600))

	doc, err := loader.Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "Notes\n\nSome content here.", doc.Content)
	assert.Equal(t, "markdown", doc.Metadata["file_type"])
	assert.Equal(t, path, doc.Metadata["source"])
}
