package paperblog

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/paperblog/content"
	"github.com/eringen/paperblog/views"
)

func (a *App) published() ([]content.Post, error) {
	return a.Cache.Published(a.Site.ScheduledPostMargin, a.now(), a.Config.Dev)
}

// meta builds page metadata with site-wide defaults.
func (a *App) meta(c echo.Context, title, description string) views.Meta {
	if title == "" {
		title = a.Site.Author
	} else {
		title = title + " | " + a.Site.Author
	}
	return views.Meta{
		Site:        a.Site,
		Title:       title,
		Description: description,
		Canonical:   a.Site.BaseURL() + c.Request().URL.Path,
		OGImage:     content.SiteOGImageURL(a.Site),
		OGType:      "website",
		JSONLD:      views.WebsiteJsonLD(a.Site),
		CSRF:        CsrfToken(c),
	}
}

func (a *App) handleIndex(c echo.Context) error {
	posts, err := a.published()
	if err != nil {
		return err
	}
	featured, recent := content.Index(posts, a.Site.PostPerIndex)
	hasMore := len(posts) > a.Site.PostPerIndex
	return Render(c, views.Index(a.meta(c, "", "Posts by "+a.Site.Author), featured, recent, hasMore))
}

// pageParam returns the :page route parameter, or 1 on the first-page route.
func pageParam(c echo.Context) (int, error) {
	raw := c.Param("page")
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return n, nil
}

// paginate renders the requested page, redirecting /page/1/ to the listing
// root and answering 404 outside the page range.
func (a *App) paginate(c echo.Context, posts []content.Post, base string, render func(content.Page) error) error {
	n, err := pageParam(c)
	if err != nil {
		return err
	}
	if n == 1 && c.Param("page") != "" {
		return c.Redirect(http.StatusMovedPermanently, base)
	}
	page, err := content.Paginate(posts, a.Site.PostPerPage, n, base)
	if errors.Is(err, content.ErrPageOutOfRange) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return render(page)
}

func (a *App) handlePosts(c echo.Context) error {
	posts, err := a.published()
	if err != nil {
		return err
	}
	return a.paginate(c, posts, "/posts/", func(p content.Page) error {
		return Render(c, views.Posts(a.meta(c, "Posts", "All the articles I've posted."), p))
	})
}

// findPost returns the published post with slug, its neighbours, or ErrNotFound.
func (a *App) findPost(slug string) (content.Post, []content.Post, error) {
	posts, err := a.published()
	if err != nil {
		return content.Post{}, nil, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, posts, nil
		}
	}
	return content.Post{}, nil, ErrNotFound
}

func (a *App) handlePost(c echo.Context) error {
	post, posts, err := a.findPost(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	newer, older := content.Adjacent(posts, post.Slug)

	meta := a.meta(c, post.Title, post.Description)
	if post.CanonicalURL != "" {
		meta.Canonical = post.CanonicalURL
	}
	meta.OGImage = content.OGImageURL(a.Site, post)
	meta.OGType = "article"
	meta.Published = &post.PubDatetime
	meta.Modified = post.ModDatetime
	meta.JSONLD = views.BlogPostingJsonLD(a.Site, post)
	meta.ShowBack = a.Site.ShowBackButton
	return Render(c, views.Post(meta, post, newer, older))
}

func (a *App) handleTags(c echo.Context) error {
	posts, err := a.published()
	if err != nil {
		return err
	}
	return Render(c, views.Tags(a.meta(c, "Tags", "All the tags used in posts."), content.Tags(posts)))
}

func (a *App) handleTag(c echo.Context) error {
	posts, err := a.published()
	if err != nil {
		return err
	}
	slug := c.Param("tag")
	var tag content.Tag
	for _, t := range content.Tags(posts) {
		if t.Slug == slug {
			tag = t
			break
		}
	}
	if tag.Slug == "" {
		return echo.ErrNotFound
	}
	tagged := content.ByTag(posts, slug)
	base := "/tags/" + url.PathEscape(slug) + "/"
	return a.paginate(c, tagged, base, func(p content.Page) error {
		meta := a.meta(c, "Tag: "+tag.Name, `All the articles with the tag "`+tag.Name+`".`)
		return Render(c, views.Tag(meta, tag, p))
	})
}

func (a *App) handleArchives(c echo.Context) error {
	if !a.Site.ShowArchives {
		return echo.ErrNotFound
	}
	posts, err := a.published()
	if err != nil {
		return err
	}
	years := content.Archive(posts, a.Site.Location())
	return Render(c, views.Archives(a.meta(c, "Archives", "All the articles I've archived."), years))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.published()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.published()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Site.BaseURL() + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.meta(c, "404 Not Found", "")))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, views.ServerError(a.meta(c, "Server Error", "")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
