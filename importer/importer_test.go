package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/eringen/paperblog/content"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

type memStore struct {
	posts map[string]content.Post
	err   error
}

func (m *memStore) SavePost(p content.Post) error {
	if m.err != nil {
		return m.err
	}
	if m.posts == nil {
		m.posts = map[string]content.Post{}
	}
	m.posts[p.Slug] = p
	return nil
}

func (m *memStore) DeletePost(slug string) error {
	delete(m.posts, slug)
	return nil
}

func (m *memStore) SlugsFromPath(prefix string) ([]string, error) {
	var slugs []string
	for slug, p := range m.posts {
		if p.FilePath != "" && strings.HasPrefix(p.FilePath, prefix) {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hello.md"), "---\ntitle: Hello\npubDatetime: 2024-01-02T03:04:05Z\n---\nHi.\n")
	writeFile(t, filepath.Join(dir, "nested", "second.md"), "---\ntitle: Second\nslug: two\npubDatetime: 2024-02-01T00:00:00Z\ntags: [go]\n---\nBody\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	posts, err := Read(dir, "")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "hello", posts[0].Slug)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "hello.md")), posts[0].FilePath)
	assert.Equal(t, "two", posts[1].Slug)
	assert.Equal(t, []string{"go"}, posts[1].Tags)

	top, err := Read(dir, "*.md")
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestReadRejectsDuplicateSlugs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "---\ntitle: A\nslug: same\npubDatetime: 2024-01-01T00:00:00Z\n---\n")
	writeFile(t, filepath.Join(dir, "b.md"), "---\ntitle: B\nslug: same\npubDatetime: 2024-01-01T00:00:00Z\n---\n")

	_, err := Read(dir, "")
	assert.ErrorContains(t, err, "duplicate slug")
}

func TestReadBadInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.md"), "no frontmatter here")

	_, err := Read(dir, "")
	assert.ErrorIs(t, err, content.ErrFrontmatter)

	_, err = Read(dir, "[")
	assert.Error(t, err)
}

func TestSync(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.md"), "---\ntitle: One\npubDatetime: 2024-01-01T00:00:00Z\n---\n")

	store := &memStore{}
	res, err := Sync(store, dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, res.Imported)
	assert.Empty(t, res.Removed)
	assert.Contains(t, store.posts, "one")

	failing := &memStore{err: errors.New("disk full")}
	_, err = Sync(failing, dir, "")
	assert.ErrorContains(t, err, "disk full")
}

func TestSyncRemovesDeletedAndRenamedFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "blog")
	writeFile(t, filepath.Join(dir, "a.md"), "---\ntitle: A\npubDatetime: 2024-01-01T00:00:00Z\n---\n")
	writeFile(t, filepath.Join(dir, "b.md"), "---\ntitle: B\npubDatetime: 2024-01-01T00:00:00Z\n---\n")
	writeFile(t, filepath.Join(dir, "c.md"), "---\ntitle: C\npubDatetime: 2024-01-01T00:00:00Z\n---\n")

	store := &memStore{}
	// Posts from elsewhere are left alone.
	require.NoError(t, store.SavePost(content.Post{Slug: "admin-post"}))
	require.NoError(t, store.SavePost(content.Post{Slug: "sibling", FilePath: filepath.ToSlash(filepath.Join(root, "blog-old", "s.md"))}))

	_, err := Sync(store, dir, "")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "b.md")))
	require.NoError(t, os.Rename(filepath.Join(dir, "c.md"), filepath.Join(dir, "renamed.md")))

	res, err := Sync(store, dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, res.Removed)

	var slugs []string
	for slug := range store.posts {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	assert.Equal(t, []string{"a", "admin-post", "renamed", "sibling"}, slugs)
}

func TestSyncKeepsPostsWhenReadFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "---\ntitle: A\npubDatetime: 2024-01-01T00:00:00Z\n---\n")
	store := &memStore{}
	_, err := Sync(store, dir, "")
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "a.md"), "broken")
	_, err = Sync(store, dir, "")
	require.Error(t, err)
	assert.Contains(t, store.posts, "a")
}

func TestWatchCoalescesChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, zerolog.Nop(), func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		writeFile(t, filepath.Join(dir, "post.md"), "---\ntitle: T\npubDatetime: 2024-01-01T00:00:00Z\n---\n")
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
	select {
	case <-changed:
		t.Error("burst of writes should coalesce into one notification")
	case <-time.After(2 * debounce):
	}

	cancel()
	require.NoError(t, <-done)
}
