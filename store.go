package paperblog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/paperblog/content"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database and provides CRUD operations for posts and images.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed during writes; busy_timeout makes writers
	// wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    pub_datetime TEXT NOT NULL,
    mod_datetime TEXT,
    tags TEXT NOT NULL DEFAULT '',
    draft INTEGER NOT NULL DEFAULT 0,
    featured INTEGER NOT NULL DEFAULT 0,
    og_image TEXT NOT NULL DEFAULT '',
    canonical_url TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_pub_datetime ON posts (pub_datetime DESC);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	if err != nil {
		return err
	}
	// Columns added after the first release.
	for _, col := range []string{
		`timezone TEXT NOT NULL DEFAULT ''`,
		`file_path TEXT NOT NULL DEFAULT ''`,
	} {
		if _, err := s.db.Exec(`ALTER TABLE posts ADD COLUMN ` + col); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
				continue
			}
			return err
		}
	}
	return nil
}

const postColumns = `slug, title, description, pub_datetime, mod_datetime, tags, draft, featured, og_image, canonical_url, timezone, file_path, content`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (content.Post, error) {
	var (
		p               content.Post
		pub, tags       string
		mod             sql.NullString
		draft, featured int
	)
	if err := row.Scan(&p.Slug, &p.Title, &p.Description, &pub, &mod, &tags, &draft, &featured,
		&p.OGImage, &p.CanonicalURL, &p.Timezone, &p.FilePath, &p.Content); err != nil {
		return content.Post{}, err
	}
	t, err := time.Parse(time.RFC3339, pub)
	if err != nil {
		return content.Post{}, fmt.Errorf("post %s: pub_datetime: %w", p.Slug, err)
	}
	p.PubDatetime = t
	if mod.Valid && mod.String != "" {
		m, err := time.Parse(time.RFC3339, mod.String)
		if err != nil {
			return content.Post{}, fmt.Errorf("post %s: mod_datetime: %w", p.Slug, err)
		}
		p.ModDatetime = &m
	}
	p.Tags = ParseTags(tags)
	p.Draft = draft == 1
	p.Featured = featured == 1
	return p, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]content.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all non-draft posts, newest first. Scheduled posts are
// included; callers decide visibility against the current time.
func (s *Store) ListPosts() ([]content.Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE draft = 0 ORDER BY pub_datetime DESC`)
}

// ListAllPosts returns every post including drafts, newest first.
func (s *Store) ListAllPosts() ([]content.Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY pub_datetime DESC`)
}

// GetPostAny returns a post by slug regardless of draft status (for admin).
func (s *Store) GetPostAny(slug string) (content.Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// SavePost upserts a post.
func (s *Store) SavePost(p content.Post) error {
	var mod any
	if p.ModDatetime != nil && !p.ModDatetime.IsZero() {
		mod = p.ModDatetime.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Description, p.PubDatetime.UTC().Format(time.RFC3339), mod,
		FormatTags(p.Tags), boolInt(p.Draft), boolInt(p.Featured),
		p.OGImage, p.CanonicalURL, p.Timezone, p.FilePath, p.Content)
	return err
}

// SlugsFromPath returns the slugs of posts whose source path starts with
// prefix. An empty prefix matches every post imported from a file.
func (s *Store) SlugsFromPath(prefix string) ([]string, error) {
	rows, err := s.db.Query(`SELECT slug FROM posts WHERE file_path != '' AND substr(file_path, 1, length(?1)) = ?1 ORDER BY slug`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// SaveImage upserts image metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether metadata for filename is stored.
func (s *Store) ImageExists(filename string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

// DeleteImage removes image metadata.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// FormatTags encodes tags as a comma-delimited string (",go,web dev,").
func FormatTags(tags []string) string {
	clean := FilterEmpty(tags)
	if len(clean) == 0 {
		return ""
	}
	return "," + strings.Join(clean, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
