package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/eringen/paperblog/content"
	"github.com/eringen/paperblog/markdown"
	"github.com/eringen/paperblog/site"
)

var funcs = template.FuncMap{
	"date": func(p content.Post, cfg site.Config) string {
		return content.FormatDate(p.PubDatetime, p.Location(cfg))
	},
	"updated": func(p content.Post, cfg site.Config) string {
		return content.FormatDateTime(p.Updated(), p.Location(cfg))
	},
	"iso": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
	"markdown": func(s string) (template.HTML, error) {
		out, err := markdown.HTML(s)
		// Output comes from goldmark with raw HTML disabled.
		return template.HTML(out), err
	},
	"tagSlug":  content.Slugify,
	"pageURL":  content.PageURL,
	"editURL":  content.EditURL,
	"pathEsc":  url.PathEscape,
	"joinTags": JoinTags,
	"cardData": func(p content.Post, cfg site.Config) cardData {
		return cardData{Post: p, Site: cfg}
	},
	"formData": func(csrf string) formData {
		return formData{CSRF: csrf}
	},
}

type cardData struct {
	Post content.Post
	Site site.Config
}

type formData struct {
	Post content.Post
	CSRF string
}

// JoinTags formats a tag slice as a comma-separated string for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block for cfg.
func WebsiteJsonLD(cfg site.Config) template.JS {
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "WebSite",
		"name":       cfg.Author,
		"url":        cfg.BaseURL() + "/",
		"inLanguage": cfg.HTMLLang(),
	}
	if cfg.Author != "" {
		data["author"] = person(cfg)
	}
	return marshal(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg site.Config, post content.Post) template.JS {
	postURL := cfg.BaseURL() + post.Link()
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.PubDatetime.UTC().Format(time.RFC3339),
		"dateModified":  post.Updated().UTC().Format(time.RFC3339),
		"image":         content.OGImageURL(cfg, post),
		"url":           postURL,
		"inLanguage":    cfg.HTMLLang(),
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = person(cfg)
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshal(data)
}

func person(cfg site.Config) map[string]string {
	p := map[string]string{
		"@type": "Person",
		"name":  cfg.Author,
	}
	if cfg.Profile != "" {
		p["url"] = cfg.Profile
	}
	return p
}

// json.Marshal escapes <, > and &, so the result is safe inside <script>.
func marshal(data map[string]interface{}) template.JS {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}
