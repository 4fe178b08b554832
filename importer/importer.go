// Package importer loads markdown posts with YAML frontmatter from a
// directory tree into the post store, once or continuously.
package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/eringen/paperblog/content"
)

// DefaultPattern matches markdown files at any depth.
const DefaultPattern = "**/*.md"

// Store persists imported posts. *paperblog.Store satisfies it.
type Store interface {
	SavePost(content.Post) error
	DeletePost(slug string) error
	// SlugsFromPath lists posts whose source path starts with prefix.
	SlugsFromPath(prefix string) ([]string, error)
}

// Result reports what Sync changed.
type Result struct {
	Imported []string // slugs upserted from files
	Removed  []string // slugs whose file is gone
}

// Read parses every file under dir matching pattern (doublestar syntax,
// relative to dir). Each post's FilePath is dir joined with the match.
// Duplicate slugs are an error because the later file would replace the
// earlier one.
func Read(dir, pattern string) ([]content.Post, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("importer: bad pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("importer: glob %s: %w", dir, err)
	}
	sort.Strings(matches)

	posts := make([]content.Post, 0, len(matches))
	seen := map[string]string{}
	for _, m := range matches {
		p, err := readFile(dir, m)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[p.Slug]; ok {
			return nil, fmt.Errorf("importer: duplicate slug %q in %s and %s", p.Slug, prev, p.FilePath)
		}
		seen[p.Slug] = p.FilePath
		posts = append(posts, p)
	}
	return posts, nil
}

func readFile(dir, rel string) (content.Post, error) {
	data, err := fs.ReadFile(os.DirFS(dir), rel)
	if err != nil {
		return content.Post{}, fmt.Errorf("importer: %w", err)
	}
	return content.ParseFile(path.Join(filepath.ToSlash(dir), rel), data)
}

// Sync reads dir, upserts every post into s, and deletes stored posts
// that came from dir but whose file no longer exists or now carries a
// different slug. Nothing is deleted when reading fails.
func Sync(s Store, dir, pattern string) (Result, error) {
	posts, err := Read(dir, pattern)
	if err != nil {
		return Result{}, err
	}
	var res Result
	live := make(map[string]bool, len(posts))
	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			return res, fmt.Errorf("importer: save %s: %w", p.FilePath, err)
		}
		live[p.Slug] = true
		res.Imported = append(res.Imported, p.Slug)
	}

	stored, err := s.SlugsFromPath(pathPrefix(dir))
	if err != nil {
		return res, fmt.Errorf("importer: list %s: %w", dir, err)
	}
	for _, slug := range stored {
		if live[slug] {
			continue
		}
		if err := s.DeletePost(slug); err != nil {
			return res, fmt.Errorf("importer: delete %s: %w", slug, err)
		}
		res.Removed = append(res.Removed, slug)
	}
	return res, nil
}

// pathPrefix is the FilePath prefix shared by every post read from dir.
func pathPrefix(dir string) string {
	clean := path.Clean(filepath.ToSlash(dir))
	if clean == "." {
		return ""
	}
	return strings.TrimSuffix(clean, "/") + "/"
}
