package mdblog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/language"
)

// Defaults for front matter keys a post leaves out.
const (
	DefaultTitle       = "Untitled"
	DefaultDescription = ""
	DefaultDate        = "2025-01-01"
)

// frontMatter is the typed envelope of the recognised keys. Empty fields
// count as missing; unknown keys are dropped by the decoder.
type frontMatter struct {
	Title       string `yaml:"title" toml:"title" json:"title"`
	Slug        string `yaml:"slug" toml:"slug" json:"slug"`
	Description string `yaml:"description" toml:"description" json:"description"`
	Date        frontMatterDate `yaml:"date" toml:"date" json:"date"`
}

// frontMatterDate is the date key as text. TOML writes dates natively
// (date = 2025-03-01), those are turned back into the two accepted shapes.
type frontMatterDate string

func (fd *frontMatterDate) UnmarshalTOML(v interface{}) error {
	switch v := v.(type) {
	case string:
		*fd = frontMatterDate(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			*fd = frontMatterDate(v.Format(dateLayout))
		} else {
			*fd = frontMatterDate(v.Format(dateTimeLayout))
		}
	default:
		return fmt.Errorf("date must be a string or a TOML date, got %T", v)
	}
	return nil
}

func (fm frontMatter) descriptor(filename, ext string) Descriptor {
	d := Descriptor{
		Filename:    filename,
		Title:       fm.Title,
		Slug:        fm.Slug,
		Description: fm.Description,
		Date:        string(fm.Date),
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.Slug == "" {
		d.Slug = strings.TrimSuffix(filename, ext)
	}
	if d.Description == "" {
		d.Description = DefaultDescription
	}
	if d.Date == "" {
		d.Date = DefaultDate
	}
	return d
}

// LoaderConfig selects the posts and their order.
type LoaderConfig struct {
	// Extension of post files, ".md" when empty.
	Extension string
	SortBy    SortKey
	SortOrder SortOrder
	// Locale drives title collation. The zero tag is the root collation.
	Locale language.Tag
}

// Loader reads post descriptors from the top level of a directory. It holds
// no state between calls; every LoadAll reads the directory again.
type Loader struct {
	fsys      fs.FS
	ext       string
	sortBy    SortKey
	sortOrder SortOrder
	locale    language.Tag
	logger    *slog.Logger
}

func NewLoader(fsys fs.FS, cfg LoaderConfig, logger *slog.Logger) *Loader {
	ext := cfg.Extension
	if ext == "" {
		ext = ".md"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fsys:      fsys,
		ext:       ext,
		sortBy:    cfg.SortBy,
		sortOrder: cfg.SortOrder,
		locale:    cfg.Locale,
		logger:    logger,
	}
}

// LoadAll returns the descriptors of every post file, sorted. A missing
// directory is an empty blog, not an error.
func (l *Loader) LoadAll() ([]Descriptor, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Descriptor{}, nil
		}
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	ds := make([]Descriptor, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), l.ext) {
			continue
		}
		content, err := fs.ReadFile(l.fsys, e.Name())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				l.logger.Debug("Post vanished while listing", slog.String("file", e.Name()))
				continue
			}
			return nil, fmt.Errorf("reading post %v: %w", e.Name(), err)
		}
		d, _ := l.parse(e.Name(), content)
		ds = append(ds, d)
	}

	sortDescriptors(ds, l.sortBy, l.sortOrder, l.locale, l.logger)
	return ds, nil
}

// read loads one post file and splits it in a single pass. found is false if
// the file no longer exists.
func (l *Loader) read(filename string) (d Descriptor, body []byte, found bool, err error) {
	content, err := fs.ReadFile(l.fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Descriptor{}, nil, false, nil
		}
		return Descriptor{}, nil, false, fmt.Errorf("reading post %v: %w", filename, err)
	}
	d, body = l.parse(filename, content)
	return d, body, true, nil
}

// parse treats a file with broken front matter as having none at all: every
// field takes its default and the whole file is the body.
func (l *Loader) parse(filename string, content []byte) (Descriptor, []byte) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		l.logger.Warn("Ignoring malformed front matter",
			slog.String("file", filename), slog.String("error", err.Error()))
		return frontMatter{}.descriptor(filename, l.ext), content
	}
	return fm.descriptor(filename, l.ext), body
}
