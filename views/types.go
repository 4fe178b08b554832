package views

import (
	"html/template"
	"time"

	"github.com/eringen/paperblog/site"
)

// Meta carries per-page OpenGraph and SEO metadata into the <head> template,
// along with the site record every page reads.
type Meta struct {
	Site        site.Config
	Title       string
	Description string
	Canonical   string // canonical + og:url
	OGImage     string // absolute og:image URL
	OGType      string // "website" or "article"
	Published   *time.Time
	Modified    *time.Time
	JSONLD      template.JS
	ShowBack    bool // render the back-navigation control
	CSRF        string
}

// Image is an uploaded image listed on the admin images page.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
