package main

import (
	"log"

	"github.com/thomas11/mdblog"
)

const siteUrl = "http://example.com"

var conf = mdblog.SiteConf{
	Author:             "Joe User",
	AuthorUri:          siteUrl,
	BaseUrl:            siteUrl,
	SiteTitle:          "Joe User's site.",
	SiteDescription:    "Plain Markdown files, rendered.",
	PostsDir:           "posts",
	PostsFileExtension: ".md",
	PostsPerPage:       5,
	SortBy:             mdblog.SortByDate,
	SortOrder:          mdblog.Descending,
	MarkdownEngine:     mdblog.EngineGoldmark,
	BasePath:           "/blog",
	StaticFilesDir:     "posts/static",
	OutDir:             "out",
	FeedEntries:        20,
}

func main() {
	site, err := mdblog.ReadSite(&conf, nil, nil)
	if err != nil {
		log.Fatal(err)
	}

	if err = site.RenderAll(); err != nil {
		log.Fatal(err)
	}
	if err = site.CopyStaticFiles(); err != nil {
		log.Fatal(err)
	}
}
