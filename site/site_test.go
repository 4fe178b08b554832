package site

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://blog.muazothman.com/", cfg.Website)
	assert.Equal(t, "Muaz Othman", cfg.Author)
	assert.Equal(t, 4, cfg.PostPerIndex)
	assert.Equal(t, 4, cfg.PostPerPage)
	assert.Equal(t, 900000*time.Millisecond, cfg.ScheduledPostMargin)
	assert.True(t, cfg.EditPost.Enabled)
	assert.Equal(t, "America/Chicago", cfg.Timezone)
}

func TestGetReturnsIndependentCopies(t *testing.T) {
	a := Get()
	a.Author = "someone else"
	a.EditPost.URL = "https://example.com/"

	b := Get()
	assert.Equal(t, Default(), b)
	assert.Equal(t, b, Get())
}

func TestSetAfterFirstUseIsFrozen(t *testing.T) {
	_ = Get()
	err := Set(Config{Author: "late"})
	require.ErrorIs(t, err, ErrFrozen)
	assert.Equal(t, "Muaz Othman", Get().Author)
}

func TestValidateRejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"relative website", func(c *Config) { c.Website = "/blog" }, "website"},
		{"empty profile", func(c *Config) { c.Profile = "" }, "profile"},
		{"edit url without host", func(c *Config) { c.EditPost.URL = "https://" }, "edit_post.url"},
		{"zero per index", func(c *Config) { c.PostPerIndex = 0 }, "post_per_index"},
		{"negative per page", func(c *Config) { c.PostPerPage = -1 }, "post_per_page"},
		{"negative margin", func(c *Config) { c.ScheduledPostMargin = -time.Second }, "scheduled_post_margin"},
		{"unknown zone", func(c *Config) { c.Timezone = "Mars/Olympus_Mons" }, "timezone"},
		{"empty zone", func(c *Config) { c.Timezone = "" }, "timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	cfg := Default()
	cfg.PostPerIndex = 0
	cfg.PostPerPage = 0
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post_per_index")
	assert.Contains(t, err.Error(), "post_per_page")
}

func TestHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://blog.muazothman.com", cfg.BaseURL())
	assert.Equal(t, "en", cfg.HTMLLang())
	assert.Equal(t, "America/Chicago", cfg.Location().String())

	cfg.Lang = " "
	assert.Equal(t, "en", cfg.HTMLLang())
	cfg.Timezone = "nope"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadZoneIsMemoised(t *testing.T) {
	a, err := LoadZone("Europe/Berlin")
	require.NoError(t, err)
	b, err := LoadZone("Europe/Berlin")
	require.NoError(t, err)
	assert.Same(t, a, b)

	cfg := Default()
	cfg.Timezone = "Europe/Berlin"
	assert.Same(t, a, cfg.Location())

	_, err = LoadZone("Nowhere/Special")
	assert.Error(t, err)
}
