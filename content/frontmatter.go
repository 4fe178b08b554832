package content

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eringen/paperblog/site"
)

// ErrFrontmatter is returned for markdown files with missing or malformed frontmatter.
var ErrFrontmatter = errors.New("invalid frontmatter")

type frontmatter struct {
	Title        string     `yaml:"title"`
	Slug         string     `yaml:"slug"`
	Description  string     `yaml:"description"`
	PubDatetime  *time.Time `yaml:"pubDatetime"`
	ModDatetime  *time.Time `yaml:"modDatetime"`
	Tags         []string   `yaml:"tags"`
	Draft        bool       `yaml:"draft"`
	Featured     bool       `yaml:"featured"`
	OGImage      string     `yaml:"ogImage"`
	CanonicalURL string     `yaml:"canonicalURL"`
	Timezone     string     `yaml:"timezone"`
}

var fence = []byte("---")

// ParseFile parses a markdown file with a YAML frontmatter block.
// path is recorded as the post's source path for edit links.
func ParseFile(path string, data []byte) (Post, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, fence) {
		return Post{}, fmt.Errorf("%w: %s: missing opening ---", ErrFrontmatter, path)
	}
	rest := data[len(fence):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return Post{}, fmt.Errorf("%w: %s: missing closing ---", ErrFrontmatter, path)
	}
	head := rest[:end]
	body := rest[end+len("\n---"):]
	body = bytes.TrimLeft(body, "\n")

	var fm frontmatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return Post{}, fmt.Errorf("%w: %s: %v", ErrFrontmatter, path, err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Post{}, fmt.Errorf("%w: %s: title is required", ErrFrontmatter, path)
	}
	if fm.PubDatetime == nil || fm.PubDatetime.IsZero() {
		return Post{}, fmt.Errorf("%w: %s: pubDatetime is required", ErrFrontmatter, path)
	}
	if fm.Timezone != "" {
		if _, err := site.LoadZone(fm.Timezone); err != nil {
			return Post{}, fmt.Errorf("%w: %s: timezone %q: %v", ErrFrontmatter, path, fm.Timezone, err)
		}
	}

	slug := Slugify(fm.Slug)
	if slug == "" {
		base := filepath.Base(path)
		slug = Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	tags := fm.Tags
	if len(tags) == 0 {
		tags = []string{"others"}
	}

	return Post{
		Slug:         slug,
		Title:        strings.TrimSpace(fm.Title),
		Description:  strings.TrimSpace(fm.Description),
		PubDatetime:  fm.PubDatetime.UTC(),
		ModDatetime:  fm.ModDatetime,
		Tags:         tags,
		Draft:        fm.Draft,
		Featured:     fm.Featured,
		OGImage:      fm.OGImage,
		CanonicalURL: fm.CanonicalURL,
		Timezone:     fm.Timezone,
		FilePath:     filepath.ToSlash(path),
		Content:      string(body),
	}, nil
}
