package content

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePosts(n int) []Post {
	posts := make([]Post, n)
	for i := range posts {
		posts[i] = post(fmt.Sprintf("p%d", i), now.Add(-time.Duration(i)*time.Hour))
	}
	return posts
}

func TestPaginate(t *testing.T) {
	posts := makePosts(9)

	first, err := Paginate(posts, 4, 1, "/posts/")
	require.NoError(t, err)
	assert.Len(t, first.Items, 4)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 9, first.Total)
	assert.Empty(t, first.PrevURL)
	assert.Equal(t, "/posts/page/2/", first.NextURL)

	second, err := Paginate(posts, 4, 2, "/posts/")
	require.NoError(t, err)
	assert.Equal(t, "/posts/", second.PrevURL)
	assert.Equal(t, "/posts/page/3/", second.NextURL)

	last, err := Paginate(posts, 4, 3, "/posts/")
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "p8", last.Items[0].Slug)
	assert.Empty(t, last.NextURL)
}

func TestPaginateOutOfRange(t *testing.T) {
	posts := makePosts(4)
	for _, page := range []int{0, -1, 2} {
		_, err := Paginate(posts, 4, page, "/posts/")
		assert.ErrorIs(t, err, ErrPageOutOfRange, "page %d", page)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p, err := Paginate(nil, 4, 1, "/tags/go/")
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/tags/go/", PageURL("/tags/go", 1))
	assert.Equal(t, "/tags/go/page/4/", PageURL("/tags/go/", 4))
}
