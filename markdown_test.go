package mdblog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleMarkdown = "# Title\n\nSome **bold** and ~~struck~~ text.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<div class=\"raw\">kept</div>\n"

func TestBlackfridayRenderer(t *testing.T) {
	r, err := newMarkdownRenderer(EngineBlackfriday)
	require.NoError(t, err)

	out, err := r.render([]byte(sampleMarkdown))
	require.NoError(t, err)
	require.Contains(t, out, "Title</h1>")
	require.Contains(t, out, "<strong>bold</strong>")
	require.Contains(t, out, "<del>struck</del>")
	require.Contains(t, out, "<table>")
	require.Contains(t, out, `<div class="raw">kept</div>`)
}

func TestGoldmarkRenderer(t *testing.T) {
	r, err := newMarkdownRenderer(EngineGoldmark)
	require.NoError(t, err)

	out, err := r.render([]byte(sampleMarkdown))
	require.NoError(t, err)
	require.Contains(t, out, `<h1 id="title">Title</h1>`)
	require.Contains(t, out, "<strong>bold</strong>")
	require.Contains(t, out, "<del>struck</del>")
	require.Contains(t, out, "<table>")
	require.Contains(t, out, `<div class="raw">kept</div>`)
}

func TestNewMarkdownRenderer_DefaultsToBlackfriday(t *testing.T) {
	r, err := newMarkdownRenderer("")
	require.NoError(t, err)
	require.IsType(t, &blackfridayHtmlRenderer{}, r)
}

func TestNewMarkdownRenderer_UnknownEngine(t *testing.T) {
	_, err := newMarkdownRenderer("pandoc")
	require.Error(t, err)
}

func TestBlackfridayRenderer_IndependentDocuments(t *testing.T) {
	r, err := newMarkdownRenderer(EngineBlackfriday)
	require.NoError(t, err)

	first, err := r.render([]byte("one\n"))
	require.NoError(t, err)
	second, err := r.render([]byte("one\n"))
	require.NoError(t, err)
	require.Equal(t, first, second)
}
