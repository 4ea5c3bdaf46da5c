package mdblog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func newTestBlog(t *testing.T, dir string, perPage int) *Blog {
	t.Helper()
	b, err := NewBlog(os.DirFS(dir), newestFirst(), perPage, EngineBlackfriday, nil)
	require.NoError(t, err)
	return b
}

func TestNewBlog_RejectsBadSettings(t *testing.T) {
	_, err := NewBlog(fstest.MapFS{}, newestFirst(), 0, EngineBlackfriday, nil)
	require.True(t, errors.Is(err, ErrInvalidConf))

	_, err = NewBlog(fstest.MapFS{}, newestFirst(), 5, "pandoc", nil)
	require.True(t, errors.Is(err, ErrInvalidConf))
}

func TestBlogPage_TwelvePosts(t *testing.T) {
	dir := t.TempDir()
	writeNumberedPosts(t, dir, 12)
	b := newTestBlog(t, dir, 5)

	total, err := b.TotalPages()
	require.NoError(t, err)
	require.Equal(t, 3, total)

	page, err := b.Page(2)
	require.NoError(t, err)
	require.Equal(t, []string{"post-07", "post-06", "post-05", "post-04", "post-03"}, slugs(page.Posts))
	require.True(t, page.HasNextPage)
	require.True(t, page.HasPrevPage)

	page, err = b.Page(3)
	require.NoError(t, err)
	require.Equal(t, []string{"post-02", "post-01"}, slugs(page.Posts))
	require.False(t, page.HasNextPage)

	page, err = b.Page(42)
	require.NoError(t, err)
	require.Equal(t, 3, page.CurrentPage)
}

func TestBlogPage_EmptyDirectory(t *testing.T) {
	b := newTestBlog(t, filepath.Join(t.TempDir(), "missing"), 5)

	page, err := b.Page(1)
	require.NoError(t, err)
	require.Empty(t, page.Posts)
	require.Equal(t, 1, page.TotalPages)

	total, err := b.TotalPages()
	require.NoError(t, err)
	require.Equal(t, 1, total)
}

func TestBlogSlugs_InListingOrder(t *testing.T) {
	dir := t.TempDir()
	writeNumberedPosts(t, dir, 3)

	got, err := newTestBlog(t, dir, 5).Slugs()
	require.NoError(t, err)
	require.Equal(t, []string{"post-03", "post-02", "post-01"}, got)
}

func TestBlogBySlug_RendersBody(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "hello.md", "---\ntitle: Hello\nslug: hello-world\ndescription: Greeting\ndate: 2025-12-14 16:47\n---\n# Hi there\n\nSome **bold** text.\n")

	post, found, err := newTestBlog(t, dir, 5).BySlug("hello-world")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, Descriptor{
		Filename:    "hello.md",
		Title:       "Hello",
		Slug:        "hello-world",
		Description: "Greeting",
		Date:        "2025-12-14 16:47",
	}, post.Descriptor)
	require.Contains(t, string(post.Content), "Hi there</h1>")
	require.Contains(t, string(post.Content), "<strong>bold</strong>")
	require.NotContains(t, string(post.Content), "description:")
}

func TestBlogBySlug_Unknown_NotFoundWithoutError(t *testing.T) {
	dir := t.TempDir()
	writeNumberedPosts(t, dir, 2)
	b := newTestBlog(t, dir, 5)

	post, found, err := b.BySlug("nope")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, post)

	// Slugs match case-sensitively.
	_, found, err = b.BySlug("POST-01")
	require.NoError(t, err)
	require.False(t, found)
}

func TestBlogBySlug_DuplicateSlug_FirstInListingOrderWins(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a-old.md", postSource("Old", "dup", "2025-01-01", "old body\n"))
	writePost(t, dir, "b-new.md", postSource("New", "dup", "2025-06-01", "new body\n"))

	post, found, err := newTestBlog(t, dir, 5).BySlug("dup")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "b-new.md", post.Filename)
	require.Contains(t, string(post.Content), "new body")
}

func TestBlogBySlug_DefaultSlugFromFilename(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "plain.md", "Only a body.\n")

	post, found, err := newTestBlog(t, dir, 5).BySlug("plain")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, DefaultTitle, post.Title)
	require.Contains(t, string(post.Content), "Only a body.")
}

func TestBlogBySlug_VanishedFile_NotFound(t *testing.T) {
	fsys := &vanishingFS{files: fstest.MapFS{"gone.md": mapFile("body")}, name: "gone.md"}
	b, err := NewBlog(fsys, newestFirst(), 5, EngineBlackfriday, nil)
	require.NoError(t, err)

	post, found, err := b.BySlug("gone")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, post)
}

func TestBlog_SeesChangesWithoutReload(t *testing.T) {
	dir := t.TempDir()
	writeNumberedPosts(t, dir, 1)
	b := newTestBlog(t, dir, 5)

	got, err := b.Slugs()
	require.NoError(t, err)
	require.Equal(t, []string{"post-01"}, got)

	writePost(t, dir, "late.md", postSource("Late", "", "2026-01-01", "late\n"))
	require.NoError(t, os.Remove(filepath.Join(dir, "post-01.md")))

	got, err = b.Slugs()
	require.NoError(t, err)
	require.Equal(t, []string{"late"}, got)
}
