// Package mdblog is a static blog front-end over a directory of Markdown
// files with front matter. It lists posts in pages, renders single articles
// on demand, and can write the whole site out or serve it.
//
// Nothing is cached: every call reads the posts directory again, so a running
// server always reflects the files on disk.
//
// To get started, copy example/exampleconf.go or example/mdblog.yaml and
// customize it for your setup.
//
// This code is under BSD license. See license-bsd.txt.
package mdblog

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
)

// Blog is the read surface the page rendering code uses.
type Blog struct {
	loader  *Loader
	perPage int
	md      renderer
	logger  *slog.Logger
}

// NewBlog reads posts from fsys. perPage must be positive.
func NewBlog(fsys fs.FS, cfg LoaderConfig, perPage int, engine string, logger *slog.Logger) (*Blog, error) {
	if perPage < 1 {
		return nil, fmt.Errorf("%w: posts per page must be positive, got %d", ErrInvalidConf, perPage)
	}
	md, err := newMarkdownRenderer(engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConf, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Blog{
		loader:  NewLoader(fsys, cfg, logger),
		perPage: perPage,
		md:      md,
		logger:  logger,
	}, nil
}

// NewBlogFromConf builds the Blog described by a site configuration.
func NewBlogFromConf(conf *SiteConf, logger *slog.Logger) (*Blog, error) {
	return NewBlog(os.DirFS(conf.PostsDir), conf.loaderConfig(), conf.PostsPerPage, conf.MarkdownEngine, logger)
}

// All returns every post descriptor in listing order.
func (b *Blog) All() ([]Descriptor, error) {
	return b.loader.LoadAll()
}

// Slugs returns the slugs of all posts in listing order.
func (b *Blog) Slugs() ([]string, error) {
	ds, err := b.loader.LoadAll()
	if err != nil {
		return nil, err
	}
	return slugsOf(ds), nil
}

// Page returns listing page n, clamped into the existing pages.
func (b *Blog) Page(n int) (Page, error) {
	ds, err := b.loader.LoadAll()
	if err != nil {
		return Page{}, err
	}
	posts, p := Paginate(ds, n, b.perPage)
	return Page{Posts: posts, Pagination: p}, nil
}

// TotalPages is the number of listing pages, at least 1.
func (b *Blog) TotalPages() (int, error) {
	ds, err := b.loader.LoadAll()
	if err != nil {
		return 0, err
	}
	return TotalPages(len(ds), b.perPage), nil
}

// BySlug resolves the first post in listing order whose slug matches exactly
// and renders its body. found is false when no post has the slug, or when its
// file disappeared before it could be read.
func (b *Blog) BySlug(slug string) (post *Post, found bool, err error) {
	ds, err := b.loader.LoadAll()
	if err != nil {
		return nil, false, err
	}

	var filename string
	for _, d := range ds {
		if d.Slug == slug {
			filename = d.Filename
			break
		}
	}
	if filename == "" {
		return nil, false, nil
	}

	d, body, found, err := b.loader.read(filename)
	if err != nil || !found {
		if !found && err == nil {
			b.logger.Debug("Post vanished before it was read", slog.String("slug", slug), slog.String("file", filename))
		}
		return nil, false, err
	}

	html, err := b.md.render(body)
	if err != nil {
		return nil, false, fmt.Errorf("rendering %v: %w", filename, err)
	}
	return &Post{Descriptor: d, Content: template.HTML(html)}, true, nil
}
