package mdblog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// postSource builds a post file with YAML front matter. Empty values are left
// out of the front matter.
func postSource(title, slug, date, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	if title != "" {
		fmt.Fprintf(&b, "title: %q\n", title)
	}
	if slug != "" {
		fmt.Fprintf(&b, "slug: %s\n", slug)
	}
	if date != "" {
		fmt.Fprintf(&b, "date: %s\n", date)
	}
	b.WriteString("---\n")
	b.WriteString(body)
	return b.String()
}

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// writeNumberedPosts writes post-01.md .. post-NN.md dated 2025-01-01 onwards,
// so post-NN is the newest.
func writeNumberedPosts(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		slug := fmt.Sprintf("post-%02d", i)
		writePost(t, dir, slug+".md", postSource(
			fmt.Sprintf("Post %02d", i), "", fmt.Sprintf("2025-01-%02d", i),
			fmt.Sprintf("# Heading %02d\n\nBody of **%s**.\n", i, slug)))
	}
}

// testConf is a finished configuration rooted in a fresh temporary directory.
func testConf(t *testing.T) *SiteConf {
	t.Helper()
	root := t.TempDir()
	conf := &SiteConf{
		SiteTitle: "Test Blog",
		Author:    "Tester",
		BaseUrl:   "http://example.com",
		PostsDir:  filepath.Join(root, "posts"),
		OutDir:    filepath.Join(root, "out"),
	}
	require.NoError(t, conf.finish(root))
	return conf
}
