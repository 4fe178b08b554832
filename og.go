package paperblog

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/paperblog/ogimage"
)

// handlePostOG serves the generated preview card for a post. Posts with
// their own OG image, and sites with dynamic images off, get a 404.
func (a *App) handlePostOG(c echo.Context) error {
	if !a.Site.DynamicOGImage {
		return echo.ErrNotFound
	}
	post, _, err := a.findPost(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	if post.OGImage != "" {
		return echo.ErrNotFound
	}
	key := "post:" + post.Slug + ":" + strconv.FormatInt(post.Updated().Unix(), 10) + ":" + post.Title
	return a.servePNG(c, key, ogimage.Card{
		Title:  post.Title,
		Author: a.Site.Author,
		Site:   a.siteHost(),
	})
}

// handleSiteOG serves the generated site-wide preview card. With dynamic
// images off it redirects to the configured static image, if any.
func (a *App) handleSiteOG(c echo.Context) error {
	if !a.Site.DynamicOGImage {
		if a.Site.OGImage == "" {
			return echo.ErrNotFound
		}
		return c.Redirect(http.StatusFound, "/"+strings.TrimPrefix(a.Site.OGImage, "/"))
	}
	return a.servePNG(c, "site", ogimage.Card{
		Title:  a.Site.Author,
		Author: a.Site.Author,
		Site:   a.siteHost(),
	})
}

func (a *App) servePNG(c echo.Context, key string, card ogimage.Card) error {
	b, err := a.OG.PNG(key, card)
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/png", b)
}

func (a *App) siteHost() string {
	u, err := url.Parse(a.Site.Website)
	if err != nil {
		return a.Site.Website
	}
	return u.Host
}
