package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/paperblog/content"
	"github.com/eringen/paperblog/site"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func testMeta() Meta {
	cfg := site.Default()
	return Meta{
		Site:      cfg,
		Title:     "Test",
		Canonical: cfg.BaseURL() + "/",
		OGImage:   content.SiteOGImageURL(cfg),
		OGType:    "website",
		JSONLD:    WebsiteJsonLD(cfg),
	}
}

func testPost() content.Post {
	return content.Post{
		Slug:        "hello-world",
		Title:       "Hello <World>",
		Description: "First post",
		PubDatetime: time.Date(2024, 2, 1, 2, 0, 0, 0, time.UTC),
		Tags:        []string{"Go", "web dev"},
		FilePath:    "src/data/blog/hello-world.md",
		Content:     "## Intro\n\nSome **text**.",
	}
}

func TestIndexRendersLayoutAndCards(t *testing.T) {
	got := renderString(t, Index(testMeta(), []content.Post{testPost()}, nil, true))

	for _, want := range []string{
		`<html lang="en">`,
		`<meta property="og:image" content="https://blog.muazothman.com/astropaper-og.jpg">`,
		`href="/posts/hello-world/"`,
		"Hello &lt;World&gt;",
		"31 Jan, 2024",
		`id="theme-btn"`,
		`href="/archives/"`,
		"All Posts",
		`"@type":"WebSite"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("index output missing %q", want)
		}
	}
}

func TestLayoutHonoursFeatureFlags(t *testing.T) {
	meta := testMeta()
	meta.Site.LightAndDarkMode = false
	meta.Site.ShowArchives = false
	meta.Site.Lang = ""

	got := renderString(t, Posts(meta, content.Page{Current: 1, TotalPages: 1}))
	if strings.Contains(got, "theme-btn") {
		t.Error("theme toggle should be hidden when light and dark mode is off")
	}
	if strings.Contains(got, `href="/archives/"`) {
		t.Error("archives link should be hidden when archives are off")
	}
	if !strings.Contains(got, `<html lang="en">`) {
		t.Error("empty lang should fall back to en")
	}
}

func TestPostPage(t *testing.T) {
	meta := testMeta()
	meta.ShowBack = true
	p := testPost()
	older := content.Post{Slug: "older", Title: "Older one"}

	got := renderString(t, Post(meta, p, nil, &older))
	for _, want := range []string{
		`<h2 id="intro">Intro</h2>`,
		"<strong>text</strong>",
		`href="https://github.com/MuazOthman/blog.muazothman.com/edit/main/src/data/blog/hello-world.md"`,
		`href="/tags/web-dev/"`,
		"Go back",
		`href="/posts/older/"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("post output missing %q", want)
		}
	}

	meta.ShowBack = false
	meta.Site.EditPost.Enabled = false
	got = renderString(t, Post(meta, p, nil, nil))
	if strings.Contains(got, "Edit page") || strings.Contains(got, "Go back") {
		t.Error("edit link and back button should be hidden when disabled")
	}
}

func TestPaginationLinks(t *testing.T) {
	page := content.Page{Current: 2, TotalPages: 3, PrevURL: "/posts/", NextURL: "/posts/page/3/"}
	got := renderString(t, Tag(testMeta(), content.Tag{Slug: "go", Name: "Go"}, page))
	if !strings.Contains(got, `href="/posts/page/3/" rel="next"`) {
		t.Errorf("missing next link: %s", got)
	}
	if !strings.Contains(got, "2 / 3") {
		t.Errorf("missing page counter")
	}
}

func TestArchivesAndErrors(t *testing.T) {
	years := content.Archive([]content.Post{testPost()}, site.Default().Location())
	got := renderString(t, Archives(testMeta(), years))
	if !strings.Contains(got, "<h2>2024</h2>") || !strings.Contains(got, "January") {
		t.Errorf("archive grouping not rendered: %s", got)
	}

	if got := renderString(t, NotFound(testMeta())); !strings.Contains(got, "404") {
		t.Error("not found page missing code")
	}
	if got := renderString(t, ServerError(testMeta())); !strings.Contains(got, "500") {
		t.Error("server error page missing code")
	}
}

func TestAdminFragments(t *testing.T) {
	got := renderString(t, AdminFormPartial(testPost(), "tok"))
	if !strings.Contains(got, `value="tok"`) || !strings.Contains(got, `value="Go, web dev"`) {
		t.Errorf("form fragment incomplete: %s", got)
	}
	if strings.Contains(got, "<html") {
		t.Error("fragment should not include the layout")
	}

	got = renderString(t, AdminImages([]Image{{Filename: "cat.jpg", Width: 10, Height: 5}}, "tok"))
	if !strings.Contains(got, "/public/uploads/cat.jpg") {
		t.Errorf("image list incomplete: %s", got)
	}
}
