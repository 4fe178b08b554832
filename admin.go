package paperblog

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/paperblog/content"
	"github.com/eringen/paperblog/site"
	"github.com/eringen/paperblog/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.meta(c, "Admin", ""), false))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminPost(c echo.Context) error {
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	return Render(c, views.AdminFormPartial(post, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.log.Warn().Str("ip", ip).Msg("failed admin login")
	return Render(c, views.AdminLogin(a.meta(c, "Admin", ""), true))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// parsePubDatetime accepts RFC 3339, or a local date/time interpreted in loc.
func parsePubDatetime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := content.Slugify(c.FormValue("slug"))
	if slug == "" {
		slug = content.Slugify(title)
	}
	if slug == "" {
		return redirectAdmin(c, "Slug is required. Add a title or slug.")
	}

	timezone := strings.TrimSpace(c.FormValue("timezone"))
	loc := a.Site.Location()
	if timezone != "" {
		l, err := site.LoadZone(timezone)
		if err != nil {
			return redirectAdmin(c, "Unknown timezone "+timezone+".")
		}
		loc = l
	}

	now := a.now()
	pub := now
	if raw := strings.TrimSpace(c.FormValue("pub_datetime")); raw != "" {
		t, err := parsePubDatetime(raw, loc)
		if err != nil {
			return redirectAdmin(c, "Invalid publish date. Use YYYY-MM-DD or RFC 3339.")
		}
		pub = t
	}

	post := content.Post{
		Slug:         slug,
		Title:        title,
		Description:  strings.TrimSpace(c.FormValue("description")),
		PubDatetime:  pub,
		Tags:         FilterEmpty(strings.Split(c.FormValue("tags"), ",")),
		Draft:        c.FormValue("draft") != "",
		Featured:     c.FormValue("featured") != "",
		OGImage:      strings.TrimSpace(c.FormValue("og_image")),
		CanonicalURL: strings.TrimSpace(c.FormValue("canonical_url")),
		Timezone:     timezone,
		FilePath:     strings.TrimSpace(c.FormValue("file_path")),
		Content:      c.FormValue("content"),
	}
	if len(post.Tags) == 0 {
		post.Tags = []string{"others"}
	}
	// Editing an existing post records the modification time.
	if _, err := a.Store.GetPostAny(slug); err == nil {
		post.ModDatetime = &now
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := a.Store.SavePost(post); err != nil {
		return err
	}
	a.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if err := a.Store.DeletePost(c.Param("slug")); err != nil {
		return err
	}
	a.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

// Invalidate drops cached posts and rendered preview images after content changes.
func (a *App) Invalidate() {
	a.Cache.Invalidate()
	a.OG.Reset()
}

func redirectAdmin(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.meta(c, "Admin", ""), posts, msg))
}
