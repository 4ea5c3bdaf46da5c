package mdblog

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
)

//go:embed tmpl/*.html
var builtinTemplates embed.FS

type templateParam struct {
	PageTitle       string
	SiteTitle       string
	SiteDescription string
	// Content of the description meta tag.
	PageDescription string
	BasePath        string
	// A short id such as a slug or "page-2"
	FileId string
}

func (t templateParam) IdIs(id string) bool {
	return t.FileId == id
}

type postTemplateParam struct {
	templateParam
	*Post
}

type postListTemplateParam struct {
	templateParam
	Posts []Descriptor
	Pagination
	PageLinks []PageLink
}

// Show the numbered navigation only when there is somewhere to go.
func (p postListTemplateParam) ShowNavigation() bool {
	return p.TotalPages > 1
}

func (p postListTemplateParam) PrevPage() int { return p.CurrentPage - 1 }
func (p postListTemplateParam) NextPage() int { return p.CurrentPage + 1 }

type templateEngine struct {
	templates map[string]*template.Template
}

var pageTemplates = []string{"list.html", "post.html", "notfound.html"}

// newTemplateEngine parses all page templates up front, so the engine is only
// read afterwards and can serve concurrent requests. An empty dir selects the
// built-in templates.
func newTemplateEngine(dir string) (*templateEngine, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(builtinTemplates, "tmpl")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	funcs := template.FuncMap{
		"pageURL":    PageURL,
		"postURL":    PostURL,
		"formatDate": FormatDate,
	}

	te := &templateEngine{templates: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		t, err := template.New("global.html").Funcs(funcs).ParseFS(fsys, "global.html", name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %v: %w", name, err)
		}
		te.templates[name] = t
	}
	return te, nil
}

func (te *templateEngine) renderPost(tp templateParam, p *Post, w io.Writer) error {
	tp.PageTitle = p.Title
	tp.FileId = p.Slug
	if p.Description != "" {
		tp.PageDescription = p.Description
	}
	return te.templates["post.html"].Execute(w, postTemplateParam{templateParam: tp, Post: p})
}

func (te *templateEngine) renderPostList(tp templateParam, page Page, w io.Writer) error {
	p := postListTemplateParam{
		templateParam: tp,
		Posts:         page.Posts,
		Pagination:    page.Pagination,
		PageLinks:     PageLinks(page.CurrentPage, page.TotalPages),
	}
	return te.templates["list.html"].Execute(w, p)
}

func (te *templateEngine) renderNotFound(tp templateParam, w io.Writer) error {
	tp.PageTitle = "Not found"
	tp.FileId = "notfound"
	return te.templates["notfound.html"].Execute(w, tp)
}

func (conf *SiteConf) templateParam() templateParam {
	return templateParam{
		PageTitle:       conf.SiteTitle,
		SiteTitle:       conf.SiteTitle,
		SiteDescription: conf.SiteDescription,
		PageDescription: conf.SiteDescription,
		BasePath:        conf.BasePath,
	}
}
