// Package content implements the publishing rules the site configuration
// drives: which posts are visible, in what order, how they page, and how
// they group into archives and tags.
package content

import (
	"sort"
	"strings"
	"time"

	"github.com/eringen/paperblog/site"
)

// Post is a single blog entry.
type Post struct {
	Slug         string
	Title        string
	Description  string
	PubDatetime  time.Time
	ModDatetime  *time.Time
	Tags         []string
	Draft        bool
	Featured     bool
	OGImage      string
	CanonicalURL string
	Timezone     string // overrides the site timezone when set
	FilePath     string // source path relative to the repository root
	Content      string
}

// Link returns the site-relative URL of the post.
func (p Post) Link() string {
	return "/posts/" + p.Slug + "/"
}

// Updated returns ModDatetime when set, else PubDatetime.
func (p Post) Updated() time.Time {
	if p.ModDatetime != nil && !p.ModDatetime.IsZero() {
		return *p.ModDatetime
	}
	return p.PubDatetime
}

// Location returns the post's timezone, falling back to the site's.
func (p Post) Location(cfg site.Config) *time.Location {
	if p.Timezone != "" {
		if loc, err := site.LoadZone(p.Timezone); err == nil {
			return loc
		}
	}
	return cfg.Location()
}

// IsVisible reports whether p should be published at now. A future-dated
// post becomes visible once now is within margin of its publish time.
// dev shows scheduled posts regardless of time; drafts are never visible.
func IsVisible(p Post, now time.Time, margin time.Duration, dev bool) bool {
	if p.Draft {
		return false
	}
	return dev || now.After(p.PubDatetime.Add(-margin))
}

// Filter returns the posts visible at now.
func Filter(posts []Post, now time.Time, margin time.Duration, dev bool) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if IsVisible(p, now, margin, dev) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a copy of posts ordered newest first by Updated, ties broken by slug.
func Sort(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Updated(), out[j].Updated()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// Published applies Filter then Sort using cfg's margin.
func Published(posts []Post, cfg site.Config, now time.Time, dev bool) []Post {
	return Sort(Filter(posts, now, cfg.ScheduledPostMargin, dev))
}

// Index splits sorted posts into the featured list and up to perIndex
// recent, non-featured posts for the home page.
func Index(posts []Post, perIndex int) (featured, recent []Post) {
	for _, p := range posts {
		if p.Featured {
			featured = append(featured, p)
			continue
		}
		if len(recent) < perIndex {
			recent = append(recent, p)
		}
	}
	return featured, recent
}

// Adjacent returns the newer and older neighbours of slug within sorted posts.
func Adjacent(posts []Post, slug string) (newer, older *Post) {
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		if i > 0 {
			newer = &posts[i-1]
		}
		if i+1 < len(posts) {
			older = &posts[i+1]
		}
		return newer, older
	}
	return nil, nil
}

// EditURL returns the "edit this post" link, or "" when disabled or the
// post has no source path.
func EditURL(cfg site.Config, p Post) string {
	if !cfg.EditPost.Enabled || cfg.EditPost.URL == "" || p.FilePath == "" {
		return ""
	}
	base := cfg.EditPost.URL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(p.FilePath, "/")
}

// OGImageURL returns the absolute social preview URL for p.
func OGImageURL(cfg site.Config, p Post) string {
	switch {
	case strings.HasPrefix(p.OGImage, "http://"), strings.HasPrefix(p.OGImage, "https://"):
		return p.OGImage
	case p.OGImage != "":
		return cfg.BaseURL() + "/" + strings.TrimPrefix(p.OGImage, "/")
	case cfg.DynamicOGImage:
		return cfg.BaseURL() + p.Link() + "index.png"
	default:
		return SiteOGImageURL(cfg)
	}
}

// SiteOGImageURL returns the social preview URL for non-post pages.
func SiteOGImageURL(cfg site.Config) string {
	if cfg.OGImage != "" {
		return cfg.BaseURL() + "/" + strings.TrimPrefix(cfg.OGImage, "/")
	}
	return cfg.BaseURL() + "/og.png"
}

// FormatDate formats t in loc the way post listings show it.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02 Jan, 2006")
}

// FormatDateTime formats t in loc with time of day.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02 Jan, 2006 | 03:04 PM")
}
