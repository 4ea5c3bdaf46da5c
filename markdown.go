package mdblog

import (
	"bytes"
	"fmt"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown engines selectable in the site configuration.
const (
	EngineBlackfriday = "blackfriday"
	EngineGoldmark    = "goldmark"
)

type renderer interface {
	render(in []byte) (string, error)
}

const htmlFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const extensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings

func newMarkdownRenderer(engine string) (renderer, error) {
	switch engine {
	case "", EngineBlackfriday:
		return &blackfridayHtmlRenderer{htmlFlags, extensions}, nil
	case EngineGoldmark:
		return newGoldmarkRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown markdown engine %q", engine)
	}
}

// The blackfriday HTML renderer tracks heading ids and smartypants state, so
// a fresh one is built for every document.
type blackfridayHtmlRenderer struct {
	flags      blackfriday.HTMLFlags
	extensions blackfriday.Extensions
}

func (b *blackfridayHtmlRenderer) render(in []byte) (string, error) {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: b.flags})
	return string(blackfriday.Run(in, blackfriday.WithRenderer(r), blackfriday.WithExtensions(b.extensions))), nil
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

// Raw HTML is passed through: post authors are trusted.
func newGoldmarkRenderer() *goldmarkRenderer {
	return &goldmarkRenderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithXHTML(), html.WithUnsafe()),
	)}
}

func (g *goldmarkRenderer) render(in []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(in, &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return buf.String(), nil
}
