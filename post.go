package mdblog

import (
	"bytes"
	"html/template"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Descriptor is the listing metadata of a single post file. Filename is the
// on-disk identity, Slug the public one.
type Descriptor struct {
	Filename    string
	Title       string
	Slug        string
	Description string
	Date        string
}

// Called from templates
func (d Descriptor) FormatDate() string {
	return FormatDate(d.Date)
}

func (d Descriptor) String() string {
	b := new(bytes.Buffer)
	b.WriteString("file: ")
	b.WriteString(d.Filename)
	b.WriteString("\ntitle: ")
	b.WriteString(d.Title)
	b.WriteString("\nslug: ")
	b.WriteString(d.Slug)
	b.WriteString("\ndate: ")
	b.WriteString(d.Date)
	b.WriteString("\ndescription: ")
	b.WriteString(d.Description)
	return b.String()
}

// Post is a Descriptor together with its rendered body. Only resolved for
// single article pages.
type Post struct {
	Descriptor
	Content template.HTML
}

// SortKey selects the field posts are ordered by.
type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByTitle SortKey = "title"
)

// SortOrder is the direction of the listing.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

type sortable struct {
	d  Descriptor
	at time.Time
}

// sortDescriptors orders ds in place. The sort is stable, so posts comparing
// equal keep their directory order whatever the direction.
func sortDescriptors(ds []Descriptor, by SortKey, order SortOrder, locale language.Tag, logger *slog.Logger) {
	items := make([]sortable, len(ds))
	for i, d := range ds {
		items[i].d = d
		if by != SortByDate {
			continue
		}
		at, err := ParseDate(d.Date)
		if err != nil {
			logger.Warn("Unparseable post date, sorting it as the epoch",
				slog.String("file", d.Filename), slog.String("date", d.Date))
			at = fallbackDate
		}
		items[i].at = at
	}

	var compare func(a, b sortable) int
	switch by {
	case SortByTitle:
		col := collate.New(locale)
		compare = func(a, b sortable) int { return col.CompareString(a.d.Title, b.d.Title) }
	default:
		compare = func(a, b sortable) int { return a.at.Compare(b.at) }
	}
	if order == Descending {
		asc := compare
		compare = func(a, b sortable) int { return asc(b, a) }
	}

	slices.SortStableFunc(items, compare)

	for i := range items {
		ds[i] = items[i].d
	}
}

func slugsOf(ds []Descriptor) []string {
	slugs := make([]string, 0, len(ds))
	for _, d := range ds {
		slugs = append(slugs, d.Slug)
	}
	return slugs
}

// latestDate is the newest parseable date among ds, the zero time if none.
func latestDate(ds []Descriptor) time.Time {
	var t time.Time
	for _, d := range ds {
		at, err := ParseDate(d.Date)
		if err != nil {
			continue
		}
		if at.After(t) {
			t = at
		}
	}
	return t
}
