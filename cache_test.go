package paperblog

import (
	"testing"
	"time"

	"github.com/eringen/paperblog/content"
)

func TestPostCacheReloadsAfterInvalidate(t *testing.T) {
	s := setupTestStore(t)
	cache := NewPostCache(s, time.Hour)

	if err := s.SavePost(content.Post{Slug: "first", Title: "First", PubDatetime: date("2024-01-01T00:00:00Z"), Content: "c"}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	posts, err := cache.Posts()
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("Posts count = %d, want 1", len(posts))
	}

	if err := s.SavePost(content.Post{Slug: "second", Title: "Second", PubDatetime: date("2024-02-01T00:00:00Z"), Content: "c"}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	posts, _ = cache.Posts()
	if len(posts) != 1 {
		t.Errorf("cached Posts count = %d, want 1 before invalidation", len(posts))
	}

	cache.Invalidate()
	posts, _ = cache.Posts()
	if len(posts) != 2 || posts[0].Slug != "second" {
		t.Errorf("Posts after Invalidate = %v, want second first", posts)
	}
}

func TestPostCacheEmptyStore(t *testing.T) {
	cache := NewPostCache(setupTestStore(t), time.Hour)
	posts, err := cache.Posts()
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("Posts = %#v, want empty non-nil slice", posts)
	}
}

func TestPostCachePublishedUsesClock(t *testing.T) {
	s := setupTestStore(t)
	cache := NewPostCache(s, time.Hour)
	now := date("2024-03-01T12:00:00Z")

	for _, p := range []content.Post{
		{Slug: "past", Title: "Past", PubDatetime: now.Add(-time.Hour), Content: "c"},
		{Slug: "soon", Title: "Soon", PubDatetime: now.Add(10 * time.Minute), Content: "c"},
		{Slug: "later", Title: "Later", PubDatetime: now.Add(time.Hour), Content: "c"},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := cache.Published(15*time.Minute, now, false)
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "soon" || got[1].Slug != "past" {
		t.Errorf("Published = %v, want [soon past]", got)
	}

	// The same cached list shows the scheduled post once its time comes.
	got, _ = cache.Published(15*time.Minute, now.Add(time.Hour), false)
	if len(got) != 3 {
		t.Errorf("Published an hour later = %d posts, want 3", len(got))
	}

	got, _ = cache.Published(15*time.Minute, now, true)
	if len(got) != 3 {
		t.Errorf("Published in dev = %d posts, want 3", len(got))
	}
}
