package mdblog

import (
	"strconv"
	"strings"
)

// Pagination is the navigation state of one listing page.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalPosts   int
	PostsPerPage int
	HasNextPage  bool
	HasPrevPage  bool
}

// Page is one listing page.
type Page struct {
	Posts []Descriptor
	Pagination
}

// TotalPages is never less than 1, an empty blog still has its first page.
func TotalPages(totalPosts, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	return max(1, (totalPosts+perPage-1)/perPage)
}

// Paginate returns the posts of the requested page of ds. Out of range page
// numbers are clamped to the first or last page.
func Paginate(ds []Descriptor, page, perPage int) ([]Descriptor, Pagination) {
	if perPage < 1 {
		perPage = 1
	}
	total := TotalPages(len(ds), perPage)
	current := min(max(page, 1), total)

	start := min((current-1)*perPage, len(ds))
	end := min(start+perPage, len(ds))

	return ds[start:end], Pagination{
		CurrentPage:  current,
		TotalPages:   total,
		TotalPosts:   len(ds),
		PostsPerPage: perPage,
		HasNextPage:  current < total,
		HasPrevPage:  current > 1,
	}
}

// maxVisiblePageLinks is the size of the window below which every page gets
// a link.
const maxVisiblePageLinks = 5

// PageLink is one entry of the numbered page navigation. Ellipsis entries
// stand for skipped pages and carry no number.
type PageLink struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// PageLinks lays out the numbered navigation: the first and last page are
// always present, plus the neighbours of the current page.
func PageLinks(current, total int) []PageLink {
	links := make([]PageLink, 0, maxVisiblePageLinks+2)
	add := func(n int) { links = append(links, PageLink{Number: n, Current: n == current}) }

	if total <= maxVisiblePageLinks {
		for i := 1; i <= total; i++ {
			add(i)
		}
		return links
	}

	add(1)
	if current > 3 {
		links = append(links, PageLink{Ellipsis: true})
	}
	for i := max(2, current-1); i <= min(total-1, current+1); i++ {
		add(i)
	}
	if current < total-2 {
		links = append(links, PageLink{Ellipsis: true})
	}
	add(total)
	return links
}

// PageURL is the path of listing page n. The first page lives at basePath
// itself.
func PageURL(basePath string, n int) string {
	basePath = strings.TrimSuffix(basePath, "/")
	if n <= 1 {
		if basePath == "" {
			return "/"
		}
		return basePath
	}
	return basePath + "/page/" + strconv.Itoa(n)
}

// PostURL is the path of the article page of slug.
func PostURL(basePath, slug string) string {
	return strings.TrimSuffix(basePath, "/") + "/" + slug
}
