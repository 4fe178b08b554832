package paperblog

import (
	"sync"
	"time"

	"github.com/eringen/paperblog/content"
)

// PostCache is an in-memory cache of non-draft posts with TTL. It holds
// scheduled posts too, so visibility is decided per request against the
// clock and a scheduled post appears without waiting for the TTL.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// Posts returns the cached non-draft posts, newest first by update time.
// It tries a read lock first and only takes the write lock to reload.
func (c *PostCache) Posts() ([]content.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []content.Post{}
	}
	c.posts = content.Sort(posts)
	c.fetched = time.Now()
	return c.posts, nil
}

// Published returns the posts visible at now, keeping newest-first order.
func (c *PostCache) Published(margin time.Duration, now time.Time, dev bool) ([]content.Post, error) {
	posts, err := c.Posts()
	if err != nil {
		return nil, err
	}
	return content.Filter(posts, now, margin, dev), nil
}
