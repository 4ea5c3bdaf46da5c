package mdblog

import (
	"path/filepath"
	"strings"
	"time"

	atom "github.com/thomas11/atomgenerator"
)

func (s *Site) RenderAtom() error {
	start := time.Now()
	ds, err := s.blog.All()
	if err != nil {
		return err
	}

	atomXml, err := renderFeed(s.conf, ds, s.renderCache)
	if err != nil {
		return err
	}

	filePath := filepath.Join(s.conf.OutDir, "index.xml")
	if err := writeFile(filePath, atomXml); err != nil {
		return err
	}
	s.metrics.observeRender(kindFeed, start)
	return nil
}

// renderFeed builds the Atom feed of the newest conf.FeedEntries posts in
// listing order. Entries get content only for slugs present in bodies.
func renderFeed(conf *SiteConf, ds []Descriptor, bodies map[string]string) ([]byte, error) {
	if conf.FeedEntries > 0 && len(ds) > conf.FeedEntries {
		ds = ds[:conf.FeedEntries]
	}

	pubDate := latestDate(ds)
	if pubDate.IsZero() {
		pubDate = time.Now()
	}

	feed := atom.Feed{
		Title:   conf.SiteTitle,
		Link:    siteURL(conf, PageURL(conf.BasePath, 1)),
		PubDate: pubDate,
	}
	feed.AddAuthor(atom.Author{
		Name: conf.Author,
		Uri:  conf.AuthorUri,
	})

	for _, d := range ds {
		feed.AddEntry(entryForPost(conf, d, bodies))
	}

	errs := feed.Validate()
	if len(errs) > 0 {
		return nil, errs[0]
	}

	return feed.GenXml()
}

func entryForPost(conf *SiteConf, d Descriptor, bodies map[string]string) *atom.Entry {
	pubDate, err := ParseDate(d.Date)
	if err != nil {
		pubDate = fallbackDate
	}

	// Without a description the title stands in as the summary.
	summary := d.Description
	if summary == "" {
		summary = d.Title
	}

	e := &atom.Entry{
		Title:       d.Title,
		Description: summary,
		Link:        siteURL(conf, PostURL(conf.BasePath, d.Slug)),
		PubDate:     pubDate,
	}

	if renderedBody, ok := bodies[d.Slug]; ok {
		e.Content = renderedBody
	}

	return e
}

func siteURL(conf *SiteConf, urlPath string) string {
	return strings.TrimSuffix(conf.BaseUrl, "/") + urlPath
}
