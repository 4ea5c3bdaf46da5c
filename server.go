package mdblog

import (
	"bytes"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Server answers every request from the posts directory as it is right now.
type Server struct {
	blog    *Blog
	conf    *SiteConf
	engine  *templateEngine
	metrics *Metrics
	logger  *slog.Logger
}

func NewServer(conf *SiteConf, metrics *Metrics, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	blog, err := NewBlogFromConf(conf, logger)
	if err != nil {
		return nil, err
	}
	engine, err := newTemplateEngine(conf.TemplateDir)
	if err != nil {
		return nil, err
	}
	return &Server{blog: blog, conf: conf, engine: engine, metrics: metrics, logger: logger}, nil
}

// Handler builds the router. Listing pages live at BasePath and
// BasePath/page/N, articles at BasePath/<slug>.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	base := s.conf.BasePath
	if base != "/" {
		r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, base) })
	}
	r.GET(base, s.handleFirstPage)
	r.GET(PostURL(base, "page/:page"), s.handlePage)
	r.GET(PostURL(base, ":slug"), s.handlePost)
	r.GET("/index.xml", s.handleFeed)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	if info, err := os.Stat(s.conf.StaticFilesDir); err == nil && info.IsDir() {
		r.Static("/static", s.conf.StaticFilesDir)
	}
	r.NoRoute(func(c *gin.Context) { s.notFound(c) })

	return r
}

// ListenAndServe blocks serving on conf.Listen.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Serving blog", slog.String("dir", s.conf.PostsDir), slog.String("listen", s.conf.Listen))
	return http.ListenAndServe(s.conf.Listen, s.Handler())
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)))
	}
}

func (s *Server) handleFirstPage(c *gin.Context) {
	s.renderPage(c, 1)
}

// Only pages that a static build would write exist: anything that is not a
// page number in range is a 404 rather than a clamped page.
func (s *Server) handlePage(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("page"))
	if err != nil || n < 1 {
		s.notFound(c)
		return
	}
	s.renderPage(c, n)
}

func (s *Server) renderPage(c *gin.Context, n int) {
	start := time.Now()
	page, err := s.blog.Page(n)
	if err != nil {
		s.internalError(c, err)
		return
	}
	s.metrics.setPostsLoaded(page.TotalPosts)
	if n > page.TotalPages {
		s.notFound(c)
		return
	}

	tp := s.conf.templateParam()
	tp.FileId = "page-" + strconv.Itoa(page.CurrentPage)
	var b bytes.Buffer
	if err := s.engine.renderPostList(tp, page, &b); err != nil {
		s.internalError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", b.Bytes())
	s.metrics.observeRender(kindList, start)
}

func (s *Server) handlePost(c *gin.Context) {
	start := time.Now()
	slug := c.Param("slug")
	post, found, err := s.blog.BySlug(slug)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if !found {
		s.notFound(c)
		return
	}

	var b bytes.Buffer
	if err := s.engine.renderPost(s.conf.templateParam(), post, &b); err != nil {
		s.internalError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", b.Bytes())
	s.metrics.observeRender(kindPost, start)
}

func (s *Server) handleFeed(c *gin.Context) {
	start := time.Now()
	ds, err := s.blog.All()
	if err != nil {
		s.internalError(c, err)
		return
	}
	atomXml, err := renderFeed(s.conf, ds, nil)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", atomXml)
	s.metrics.observeRender(kindFeed, start)
}

func (s *Server) notFound(c *gin.Context) {
	var b bytes.Buffer
	if err := s.engine.renderNotFound(s.conf.templateParam(), &b); err != nil {
		s.internalError(c, err)
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", b.Bytes())
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("Request failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	c.String(http.StatusInternalServerError, "internal server error")
}
