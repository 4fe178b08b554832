package site

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalid wraps every violation reported by Validate.
var ErrInvalid = errors.New("invalid site config")

// Validate checks the record's invariants and returns every violation found.
func Validate(c Config) error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	for _, f := range []struct {
		name, value string
	}{
		{"website", c.Website},
		{"profile", c.Profile},
		{"edit_post.url", c.EditPost.URL},
	} {
		if !isAbsoluteURL(f.value) {
			invalid("%s %q is not an absolute URL", f.name, f.value)
		}
	}
	if c.PostPerIndex <= 0 {
		invalid("post_per_index must be positive, got %d", c.PostPerIndex)
	}
	if c.PostPerPage <= 0 {
		invalid("post_per_page must be positive, got %d", c.PostPerPage)
	}
	if c.ScheduledPostMargin < 0 {
		invalid("scheduled_post_margin must not be negative, got %s", c.ScheduledPostMargin)
	}
	if c.Timezone == "" {
		invalid("timezone is required")
	} else if _, err := LoadZone(c.Timezone); err != nil {
		invalid("timezone %q: %v", c.Timezone, err)
	}
	return errors.Join(errs...)
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
