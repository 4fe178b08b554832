// Package views holds the HTML components for public and admin pages.
//
// Pages are html/template files embedded from templates/ and exposed as
// templ.Component values so handlers render them uniformly.
package views

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/eringen/paperblog/content"
)

//go:embed templates/*.html
var files embed.FS

var pages = map[string]*template.Template{}

func init() {
	base := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(files,
		"templates/layout.html", "templates/partials.html", "templates/admin_fragments.html"))
	for _, name := range []string{
		"index.html", "posts.html", "post.html", "tags.html", "tag.html",
		"archives.html", "error.html",
		"admin_login.html", "admin_dashboard.html",
	} {
		pages[name] = template.Must(template.Must(base.Clone()).ParseFS(files, "templates/"+name))
	}
	fragments = base
}

// fragments executes the named admin partials on their own.
var fragments *template.Template

func page(name string, data any) templ.Component {
	return templ.FromGoHTML(pages[name], data)
}

func fragment(name string, data any) templ.Component {
	return templ.FromGoHTML(fragments.Lookup(name), data)
}

// Index renders the home page: featured posts and the most recent ones.
func Index(meta Meta, featured, recent []content.Post, hasMore bool) templ.Component {
	return page("index.html", struct {
		Meta             Meta
		Featured, Recent []content.Post
		HasMore          bool
	}{meta, featured, recent, hasMore})
}

// Posts renders one page of the full post listing.
func Posts(meta Meta, p content.Page) templ.Component {
	return page("posts.html", struct {
		Meta Meta
		Page content.Page
	}{meta, p})
}

// Post renders a single post with its neighbours.
func Post(meta Meta, post content.Post, newer, older *content.Post) templ.Component {
	return page("post.html", struct {
		Meta         Meta
		Post         content.Post
		Newer, Older *content.Post
	}{meta, post, newer, older})
}

// Tags renders the tag index.
func Tags(meta Meta, tags []content.Tag) templ.Component {
	return page("tags.html", struct {
		Meta Meta
		Tags []content.Tag
	}{meta, tags})
}

// Tag renders one page of posts carrying tag.
func Tag(meta Meta, tag content.Tag, p content.Page) templ.Component {
	return page("tag.html", struct {
		Meta Meta
		Tag  content.Tag
		Page content.Page
	}{meta, tag, p})
}

// Archives renders posts grouped by year and month.
func Archives(meta Meta, years []content.Year) templ.Component {
	return page("archives.html", struct {
		Meta  Meta
		Years []content.Year
	}{meta, years})
}

// NotFound renders the 404 page.
func NotFound(meta Meta) templ.Component {
	return page("error.html", struct {
		Meta    Meta
		Code    int
		Message string
	}{meta, 404, "Page Not Found"})
}

// ServerError renders the 500 page.
func ServerError(meta Meta) templ.Component {
	return page("error.html", struct {
		Meta    Meta
		Code    int
		Message string
	}{meta, 500, "Something went wrong"})
}

// AdminLogin renders the admin login form.
func AdminLogin(meta Meta, showError bool) templ.Component {
	return page("admin_login.html", struct {
		Meta      Meta
		ShowError bool
	}{meta, showError})
}

// AdminDashboard renders the post list and editor.
func AdminDashboard(meta Meta, posts []content.Post, message string) templ.Component {
	return page("admin_dashboard.html", struct {
		Meta    Meta
		Posts   []content.Post
		Message string
	}{meta, posts, message})
}

// AdminFormPartial renders the post editor loaded into the dashboard.
func AdminFormPartial(post content.Post, csrfToken string) templ.Component {
	return fragment("form", formData{Post: post, CSRF: csrfToken})
}

// AdminImages renders the uploaded image list.
func AdminImages(images []Image, csrfToken string) templ.Component {
	return fragment("images", struct {
		Images []Image
		CSRF   string
	}{images, csrfToken})
}
