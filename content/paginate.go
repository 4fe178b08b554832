package content

import (
	"errors"
	"strconv"
	"strings"
)

// ErrPageOutOfRange is returned for page numbers outside 1..TotalPages.
var ErrPageOutOfRange = errors.New("page out of range")

// Page is one slice of a paginated listing.
type Page struct {
	Items      []Post
	Current    int
	TotalPages int
	Total      int
	PrevURL    string
	NextURL    string
}

// Paginate returns the 1-based page of posts with perPage items each.
// base is the listing's first-page URL (e.g. "/posts/"); later pages live
// under base + "page/<n>/". Page 1 of an empty listing is valid.
func Paginate(posts []Post, perPage, page int, base string) (Page, error) {
	if perPage <= 0 {
		perPage = 1
	}
	total := (len(posts) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	if page < 1 || page > total {
		return Page{}, ErrPageOutOfRange
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(posts))

	p := Page{
		Items:      posts[start:end],
		Current:    page,
		TotalPages: total,
		Total:      len(posts),
	}
	if page > 1 {
		p.PrevURL = PageURL(base, page-1)
	}
	if page < total {
		p.NextURL = PageURL(base, page+1)
	}
	return p, nil
}

// PageURL returns the URL of page n of the listing rooted at base.
func PageURL(base string, n int) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if n <= 1 {
		return base
	}
	return base + "page/" + strconv.Itoa(n) + "/"
}
