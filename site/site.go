// Package site holds the process-wide site configuration record.
//
// The record is built once at startup (defaults, then file and environment
// overrides applied by the config package), validated, installed with Set,
// and from then on only read. Config carries no pointers, slices or maps,
// so every value returned by Get is an independent, deep-immutable copy.
package site

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// EditPost controls the "edit this post" link on post pages.
type EditPost struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	URL     string `mapstructure:"url" yaml:"url"` // base URL; the post's source path is appended
}

// Config is the site configuration record read by templates, feeds and
// image renderers.
type Config struct {
	Website             string        `mapstructure:"website" yaml:"website"`     // canonical deployed origin
	Author              string        `mapstructure:"author" yaml:"author"`
	Profile             string        `mapstructure:"profile" yaml:"profile"`     // link to the author's profile
	OGImage             string        `mapstructure:"og_image" yaml:"og_image"`   // default social preview filename
	LightAndDarkMode    bool          `mapstructure:"light_and_dark_mode" yaml:"light_and_dark_mode"`
	PostPerIndex        int           `mapstructure:"post_per_index" yaml:"post_per_index"`
	PostPerPage         int           `mapstructure:"post_per_page" yaml:"post_per_page"`
	ScheduledPostMargin time.Duration `mapstructure:"scheduled_post_margin" yaml:"scheduled_post_margin"`
	ShowArchives        bool          `mapstructure:"show_archives" yaml:"show_archives"`
	ShowBackButton      bool          `mapstructure:"show_back_button" yaml:"show_back_button"`
	EditPost            EditPost      `mapstructure:"edit_post" yaml:"edit_post"`
	DynamicOGImage      bool          `mapstructure:"dynamic_og_image" yaml:"dynamic_og_image"`
	Lang                string        `mapstructure:"lang" yaml:"lang"`         // html lang code, empty means "en"
	Timezone            string        `mapstructure:"timezone" yaml:"timezone"` // IANA zone name
}

// Default returns the built-in site record.
func Default() Config {
	return Config{
		Website:             "https://blog.muazothman.com/",
		Author:              "Muaz Othman",
		Profile:             "https://github.com/MuazOthman",
		OGImage:             "astropaper-og.jpg",
		LightAndDarkMode:    true,
		PostPerIndex:        4,
		PostPerPage:         4,
		ScheduledPostMargin: 15 * time.Minute,
		ShowArchives:        true,
		ShowBackButton:      true,
		EditPost: EditPost{
			Enabled: true,
			URL:     "https://github.com/MuazOthman/blog.muazothman.com/edit/main/",
		},
		DynamicOGImage: true,
		Lang:           "en",
		Timezone:       "America/Chicago",
	}
}

// ErrFrozen is returned by Set once the record has been installed.
var ErrFrozen = errors.New("site: config already set")

var global struct {
	once sync.Once
	cfg  Config
}

// Set installs cfg as the process-wide record. Only the first call wins.
func Set(cfg Config) error {
	err := ErrFrozen
	global.once.Do(func() {
		global.cfg = cfg
		err = nil
	})
	return err
}

// Get returns the process-wide record, or Default if Set was never called.
func Get() Config {
	global.once.Do(func() {
		global.cfg = Default()
	})
	return global.cfg
}

// HTMLLang returns the document language code.
func (c Config) HTMLLang() string {
	if strings.TrimSpace(c.Lang) == "" {
		return "en"
	}
	return c.Lang
}

// BaseURL returns Website without a trailing slash.
func (c Config) BaseURL() string {
	return strings.TrimRight(c.Website, "/")
}

// Location returns the configured timezone, falling back to UTC when the
// zone cannot be loaded. Validate reports bad zones at load time.
func (c Config) Location() *time.Location {
	loc, err := LoadZone(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
