package content

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Month groups archive posts published in one calendar month.
type Month struct {
	Month time.Month
	Posts []Post
}

// Year groups archive months, newest month first.
type Year struct {
	Year   int
	Months []Month
}

// Archive groups posts by publish year and month in loc, newest first.
// Within a month posts keep newest-first publish order.
func Archive(posts []Post, loc *time.Location) []Year {
	type key struct {
		y int
		m time.Month
	}
	groups := make(map[key][]Post)
	for _, p := range posts {
		t := p.PubDatetime.In(loc)
		k := key{t.Year(), t.Month()}
		groups[k] = append(groups[k], p)
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y > keys[j].y
		}
		return keys[i].m > keys[j].m
	})

	var years []Year
	for _, k := range keys {
		ps := groups[k]
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].PubDatetime.After(ps[j].PubDatetime)
		})
		if len(years) == 0 || years[len(years)-1].Year != k.y {
			years = append(years, Year{Year: k.y})
		}
		y := &years[len(years)-1]
		y.Months = append(y.Months, Month{Month: k.m, Posts: ps})
	}
	return years
}

// Tag is a unique tag across posts.
type Tag struct {
	Slug  string
	Name  string
	Count int
}

// Tags returns the unique tags of posts keyed by slug, sorted by slug.
// The display name is the first spelling seen.
func Tags(posts []Post) []Tag {
	index := make(map[string]int)
	var out []Tag
	for _, p := range posts {
		for _, name := range p.Tags {
			slug := Slugify(name)
			if slug == "" {
				continue
			}
			if i, ok := index[slug]; ok {
				out[i].Count++
				continue
			}
			index[slug] = len(out)
			out = append(out, Tag{Slug: slug, Name: strings.TrimSpace(name), Count: 1})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// ByTag returns the posts carrying a tag whose slug is tagSlug.
func ByTag(posts []Post, tagSlug string) []Post {
	var out []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if Slugify(t) == tagSlug {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// foldAccents decomposes letters and drops combining marks, so "é" becomes "e".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a title or tag to a URL-safe slug.
func Slugify(s string) string {
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
