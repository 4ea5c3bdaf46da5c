package mdblog

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/otiai10/copy"
)

// Site writes the whole blog out as static files.
type Site struct {
	blog    *Blog
	conf    *SiteConf
	engine  *templateEngine
	metrics *Metrics
	logger  *slog.Logger
	// Rendered post bodies of the current build, by slug, for the feed.
	renderCache map[string]string
}

func ReadSite(conf *SiteConf, metrics *Metrics, logger *slog.Logger) (*Site, error) {
	if logger == nil {
		logger = slog.Default()
	}
	blog, err := NewBlogFromConf(conf, logger)
	if err != nil {
		return nil, err
	}
	engine, err := newTemplateEngine(conf.TemplateDir)
	if err != nil {
		return nil, err
	}
	return &Site{
		blog:        blog,
		conf:        conf,
		engine:      engine,
		metrics:     metrics,
		logger:      logger,
		renderCache: make(map[string]string),
	}, nil
}

// outPath maps a URL path below the site root to its index.html in OutDir.
func (s *Site) outPath(urlPath string) string {
	return filepath.Join(s.conf.OutDir, filepath.FromSlash(urlPath), "index.html")
}

func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0775)); err != nil {
		return err
	}
	return os.WriteFile(path, b, os.FileMode(0664))
}

func (s *Site) RenderHtml() error {
	tp := s.conf.templateParam()
	s.renderCache = make(map[string]string)

	total, err := s.blog.TotalPages()
	if err != nil {
		return err
	}

	// Render the listing pages.
	for n := 1; n <= total; n++ {
		start := time.Now()
		page, err := s.blog.Page(n)
		if err != nil {
			return err
		}
		s.metrics.setPostsLoaded(page.TotalPosts)

		var b bytes.Buffer
		tp.FileId = "page-" + strconv.Itoa(n)
		if err := s.engine.renderPostList(tp, page, &b); err != nil {
			return fmt.Errorf("rendering page %d: %w", n, err)
		}
		if err := writeFile(s.outPath(PageURL(s.conf.BasePath, n)), b.Bytes()); err != nil {
			return err
		}
		s.metrics.observeRender(kindList, start)
	}

	// Render the articles.
	slugs, err := s.blog.Slugs()
	if err != nil {
		return err
	}
	for _, slug := range slugs {
		start := time.Now()
		if !publishableSlug(slug) {
			s.logger.Warn("Slug is not a single path segment, post is not published", slog.String("slug", slug))
			continue
		}
		post, found, err := s.blog.BySlug(slug)
		if err != nil {
			return err
		}
		if !found {
			s.logger.Warn("Post disappeared during the build", slog.String("slug", slug))
			continue
		}
		if _, seen := s.renderCache[slug]; seen {
			s.logger.Warn("Duplicate slug, only the first post is published", slog.String("slug", slug))
			continue
		}

		var b bytes.Buffer
		if err := s.engine.renderPost(tp, post, &b); err != nil {
			return fmt.Errorf("rendering post %v: %w", slug, err)
		}
		if err := writeFile(s.outPath(PostURL(s.conf.BasePath, slug)), b.Bytes()); err != nil {
			return err
		}
		s.renderCache[slug] = string(post.Content)
		s.metrics.observeRender(kindPost, start)
	}

	s.logger.Info("Rendered site", slog.Int("pages", total), slog.Int("posts", len(s.renderCache)))
	return nil
}

// publishableSlug reports whether slug names exactly one directory below
// BasePath.
func publishableSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".." && !strings.ContainsAny(slug, `/\`)
}

func (s *Site) RenderAll() error {
	err := s.RenderHtml()
	if err != nil {
		return err
	}
	return s.RenderAtom()
}

// CopyStaticFiles copies the static files directory, if there is one, into
// OutDir.
func (s *Site) CopyStaticFiles() error {
	srcDir := s.conf.StaticFilesDir
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		s.logger.Debug("No static files to copy", slog.String("dir", srcDir))
		return nil
	}
	dirName := filepath.Base(srcDir)
	dest := filepath.Join(s.conf.OutDir, dirName)
	s.logger.Info("Recursively copying static files", slog.String("from", srcDir), slog.String("to", dest))
	return copy.Copy(srcDir, dest)
}
