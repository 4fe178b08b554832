// Package ogimage draws Open Graph preview cards for posts and the site.
package ogimage

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	Width  = 1200
	Height = 630

	margin      = 64
	borderWidth = 4
	titleSize   = 64
	metaSize    = 28
	maxLines    = 4
)

var (
	background = color.RGBA{0xfe, 0xfb, 0xfb, 0xff}
	ink        = color.RGBA{0x28, 0x2b, 0x30, 0xff}
	accent     = color.RGBA{0x00, 0x6c, 0xac, 0xff}
)

// Card is the text content of a preview image.
type Card struct {
	Title  string
	Author string
	Site   string // host shown in the footer
}

var faces struct {
	once  sync.Once
	title font.Face
	meta  font.Face
	err   error
}

func loadFaces() error {
	faces.once.Do(func() {
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			faces.err = fmt.Errorf("parse bold font: %w", err)
			return
		}
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			faces.err = fmt.Errorf("parse regular font: %w", err)
			return
		}
		faces.title, err = opentype.NewFace(bold, &opentype.FaceOptions{Size: titleSize, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			faces.err = fmt.Errorf("title face: %w", err)
			return
		}
		faces.meta, err = opentype.NewFace(regular, &opentype.FaceOptions{Size: metaSize, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			faces.err = fmt.Errorf("meta face: %w", err)
		}
	})
	return faces.err
}

// Render draws card as a Width×Height PNG into w.
func Render(w io.Writer, card Card) error {
	if err := loadFaces(); err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	// Offset shadow card, then the bordered card on top.
	fill(img, image.Rect(margin+12, margin+12, Width-margin+12, Height-margin+12), ink)
	fill(img, image.Rect(margin, margin, Width-margin, Height-margin), ink)
	fill(img, image.Rect(margin+borderWidth, margin+borderWidth, Width-margin-borderWidth, Height-margin-borderWidth), background)

	// faces are shared; font.Face is not safe for concurrent use.
	drawMu.Lock()
	defer drawMu.Unlock()

	textWidth := Width - 4*margin
	lines := wrap(faces.title, card.Title, textWidth, maxLines)
	lineHeight := faces.title.Metrics().Height.Ceil()
	y := margin*2 + faces.title.Metrics().Ascent.Ceil()
	for _, line := range lines {
		drawText(img, faces.title, ink, margin*2, y, line)
		y += lineHeight
	}

	footerY := Height - margin*2
	if card.Author != "" {
		drawText(img, faces.meta, ink, margin*2, footerY, "by "+card.Author)
	}
	if card.Site != "" {
		siteWidth := font.MeasureString(faces.meta, card.Site).Ceil()
		drawText(img, faces.meta, accent, Width-margin*2-siteWidth, footerY, card.Site)
	}

	return png.Encode(w, img)
}

var drawMu sync.Mutex

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(img *image.RGBA, face font.Face, c color.Color, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// wrap breaks s into at most n lines no wider than width pixels.
// The last line ends with an ellipsis when text was dropped.
func wrap(face font.Face, s string, width, n int) []string {
	// fit shortens a single word that is wider than the line on its own.
	fit := func(line string) string {
		if font.MeasureString(face, line).Ceil() > width {
			return ellipsize(face, line, width)
		}
		return line
	}
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if cur == "" || font.MeasureString(face, candidate).Ceil() <= width {
			cur = candidate
			continue
		}
		lines = append(lines, fit(cur))
		if len(lines) == n {
			lines[n-1] = ellipsize(face, strings.TrimSuffix(lines[n-1], "…"), width)
			return lines
		}
		cur = word
	}
	if cur != "" {
		lines = append(lines, fit(cur))
	}
	return lines
}

func ellipsize(face font.Face, s string, width int) string {
	for s != "" && font.MeasureString(face, s+"…").Ceil() > width {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return strings.TrimSpace(s) + "…"
}
