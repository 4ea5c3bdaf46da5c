package mdblog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConf is wrapped by every configuration validation failure.
var ErrInvalidConf = errors.New("invalid site configuration")

type SiteConf struct {
	Author          string `yaml:"author" toml:"author"`
	AuthorUri       string `yaml:"authorUri" toml:"authorUri"`
	BaseUrl         string `yaml:"baseUrl" toml:"baseUrl"`
	SiteTitle       string `yaml:"siteTitle" toml:"siteTitle"`
	SiteDescription string `yaml:"siteDescription" toml:"siteDescription"`

	// Empty means the built-in templates.
	TemplateDir string `yaml:"templateDir" toml:"templateDir"`

	PostsDir           string    `yaml:"postsDirectory" toml:"postsDirectory"`
	PostsFileExtension string    `yaml:"postsFileExtension" toml:"postsFileExtension"`
	PostsPerPage       int       `yaml:"postsPerPage" toml:"postsPerPage"`
	SortBy             SortKey   `yaml:"sortBy" toml:"sortBy"`
	SortOrder          SortOrder `yaml:"sortOrder" toml:"sortOrder"`
	// BCP 47 tag used to collate titles, e.g. "zh-Hant".
	Locale         string `yaml:"locale" toml:"locale"`
	MarkdownEngine string `yaml:"markdownEngine" toml:"markdownEngine"`

	// URL path the listing pages and articles live under.
	BasePath       string `yaml:"basePath" toml:"basePath"`
	StaticFilesDir string `yaml:"staticFilesDir" toml:"staticFilesDir"`
	OutDir         string `yaml:"outDir" toml:"outDir"`
	Listen         string `yaml:"listen" toml:"listen"`
	// Number of posts in the Atom feed, 0 for all.
	FeedEntries int `yaml:"feedEntries" toml:"feedEntries"`
}

// Environment variables that override the configuration file.
const (
	EnvPostsDir     = "MDBLOG_POSTS_DIR"
	EnvPostsPerPage = "MDBLOG_POSTS_PER_PAGE"
	EnvOutDir       = "MDBLOG_OUT_DIR"
	EnvBaseUrl      = "MDBLOG_BASE_URL"
	EnvListen       = "MDBLOG_LISTEN"
)

// DefaultConf is the configuration used without a configuration file, with
// paths relative to the working directory.
func DefaultConf() (*SiteConf, error) {
	conf := &SiteConf{}
	if err := conf.finish("."); err != nil {
		return nil, err
	}
	return conf, nil
}

// ReadConf reads a YAML, JSON or TOML configuration file, applies the
// environment overrides and fills in defaults. Relative paths are taken
// relative to the file's directory so the executable can run from anywhere.
func ReadConf(fileName string) (*SiteConf, error) {
	rawConf, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	conf := SiteConf{}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".toml":
		err = toml.Unmarshal(rawConf, &conf)
	default:
		// JSON is a subset of YAML.
		err = yaml.Unmarshal(rawConf, &conf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %v: %w", fileName, err)
	}

	if err := conf.finish(filepath.Dir(fileName)); err != nil {
		return nil, err
	}
	return &conf, nil
}

// finish reads an optional .env file next to the configuration, applies the
// environment, fills in defaults and validates.
func (conf *SiteConf) finish(baseDir string) error {
	if err := godotenv.Load(filepath.Join(baseDir, ".env")); err != nil {
		slog.Debug("No .env file loaded", slog.String("error", err.Error()))
	}
	if err := conf.applyEnv(); err != nil {
		return err
	}

	// Populate with defaults
	if len(conf.PostsDir) == 0 {
		conf.PostsDir = "posts"
	}
	if len(conf.PostsFileExtension) == 0 {
		conf.PostsFileExtension = ".md"
	}
	if conf.PostsPerPage == 0 {
		conf.PostsPerPage = 5
	}
	if len(conf.SortBy) == 0 {
		conf.SortBy = SortByDate
	}
	if len(conf.SortOrder) == 0 {
		conf.SortOrder = Descending
	}
	if len(conf.MarkdownEngine) == 0 {
		conf.MarkdownEngine = EngineBlackfriday
	}
	if len(conf.BasePath) == 0 {
		conf.BasePath = "/blog"
	}
	if len(conf.StaticFilesDir) == 0 {
		conf.StaticFilesDir = filepath.Join(conf.PostsDir, "static")
	}
	if len(conf.OutDir) == 0 {
		conf.OutDir = "out"
	}
	if len(conf.Listen) == 0 {
		conf.Listen = ":9999"
	}
	if len(conf.SiteTitle) == 0 {
		conf.SiteTitle = "Blog"
	}
	if len(conf.Author) == 0 {
		conf.Author = conf.SiteTitle
	}
	if len(conf.BaseUrl) == 0 {
		conf.BaseUrl = localBaseUrl(conf.Listen)
	}
	conf.BasePath = "/" + strings.Trim(conf.BasePath, "/")

	if err := conf.validate(); err != nil {
		return err
	}

	conf.PostsDir = normalizePath(conf.PostsDir, baseDir)
	conf.StaticFilesDir = normalizePath(conf.StaticFilesDir, baseDir)
	conf.OutDir = normalizePath(conf.OutDir, baseDir)
	if len(conf.TemplateDir) > 0 {
		conf.TemplateDir = normalizePath(conf.TemplateDir, baseDir)
	}
	return nil
}

// SetListen changes the listen address. A base URL that was derived from the
// old address moves along with it.
func (conf *SiteConf) SetListen(addr string) {
	if conf.BaseUrl == localBaseUrl(conf.Listen) {
		conf.BaseUrl = localBaseUrl(addr)
	}
	conf.Listen = addr
}

func localBaseUrl(listen string) string {
	if !strings.HasPrefix(listen, ":") {
		return ""
	}
	return "http://localhost" + listen
}

func (conf *SiteConf) applyEnv() error {
	if v := os.Getenv(EnvPostsDir); v != "" {
		conf.PostsDir = v
	}
	if v := os.Getenv(EnvPostsPerPage); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %v=%q is not a number", ErrInvalidConf, EnvPostsPerPage, v)
		}
		conf.PostsPerPage = n
	}
	if v := os.Getenv(EnvOutDir); v != "" {
		conf.OutDir = v
	}
	if v := os.Getenv(EnvBaseUrl); v != "" {
		conf.BaseUrl = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		conf.Listen = v
	}
	return nil
}

func (conf *SiteConf) validate() error {
	if conf.PostsPerPage < 1 {
		return fmt.Errorf("%w: postsPerPage must be positive, got %d", ErrInvalidConf, conf.PostsPerPage)
	}
	switch conf.SortBy {
	case SortByDate, SortByTitle:
	default:
		return fmt.Errorf("%w: sortBy must be %q or %q, got %q", ErrInvalidConf, SortByDate, SortByTitle, conf.SortBy)
	}
	switch conf.SortOrder {
	case Ascending, Descending:
	default:
		return fmt.Errorf("%w: sortOrder must be %q or %q, got %q", ErrInvalidConf, Ascending, Descending, conf.SortOrder)
	}
	switch conf.MarkdownEngine {
	case EngineBlackfriday, EngineGoldmark:
	default:
		return fmt.Errorf("%w: unknown markdownEngine %q", ErrInvalidConf, conf.MarkdownEngine)
	}
	if _, err := conf.localeTag(); err != nil {
		return fmt.Errorf("%w: locale %q: %v", ErrInvalidConf, conf.Locale, err)
	}
	return nil
}

func (conf *SiteConf) localeTag() (language.Tag, error) {
	if conf.Locale == "" {
		return language.Und, nil
	}
	return language.Parse(conf.Locale)
}

func (conf *SiteConf) loaderConfig() LoaderConfig {
	// Validated in finish.
	tag, _ := conf.localeTag()
	return LoaderConfig{
		Extension: conf.PostsFileExtension,
		SortBy:    conf.SortBy,
		SortOrder: conf.SortOrder,
		Locale:    tag,
	}
}

func normalizePath(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		absPath := filepath.Join(baseDir, path)
		slog.Debug("Normalizing path", slog.String("path", path), slog.String("normalized", absPath))
		return absPath
	}
	return path
}
