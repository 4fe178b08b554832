package ogimage

import (
	"bytes"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func TestRenderProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Card{
		Title:  "Adding new posts in AstroPaper theme",
		Author: "Muaz Othman",
		Site:   "blog.muazothman.com",
	}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestWrapLimitsLines(t *testing.T) {
	require.NoError(t, loadFaces())
	title := strings.Repeat("supercalifragilistic ", 30)

	lines := wrap(faces.title, title, Width-4*margin, maxLines)
	require.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[maxLines-1], "…"))

	short := wrap(faces.title, "Hello", Width-4*margin, maxLines)
	assert.Equal(t, []string{"Hello"}, short)
	assert.Empty(t, wrap(faces.title, "   ", Width-4*margin, maxLines))
}

func TestWrapShortensLongWords(t *testing.T) {
	require.NoError(t, loadFaces())
	width := Width - 4*margin
	long := strings.Repeat("W", 200)

	lines := wrap(faces.title, long, width, maxLines)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "…"))
	assert.LessOrEqual(t, font.MeasureString(faces.title, lines[0]).Ceil(), width)

	lines = wrap(faces.title, "Intro "+long+" outro", width, maxLines)
	require.Len(t, lines, 3)
	assert.Equal(t, "Intro", lines[0])
	for _, l := range lines {
		assert.LessOrEqual(t, font.MeasureString(faces.title, l).Ceil(), width, l)
	}
	assert.Equal(t, "outro", lines[2])
}

func TestRendererCachesAndDedupes(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_og_renders_total"})
	r := NewRenderer(counter)
	card := Card{Title: "Cached", Author: "A", Site: "example.com"}

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := r.PNG("post:cached", card)
			assert.NoError(t, err)
			results[i] = b
		}(i)
	}
	wg.Wait()

	for _, b := range results {
		assert.Equal(t, results[0], b)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))

	r.Reset()
	_, err := r.PNG("post:cached", card)
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
}
