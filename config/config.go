// Package config loads server and site settings from defaults, an optional
// YAML file and BLOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/eringen/paperblog/site"
)

// Config holds all application configuration.
type Config struct {
	Server Server      `mapstructure:"server"`
	Log    Log         `mapstructure:"log"`
	Site   site.Config `mapstructure:"site"`
}

// Server holds HTTP server and storage settings.
type Server struct {
	Addr          string        `mapstructure:"addr"`
	DatabasePath  string        `mapstructure:"database_path"`
	StaticDir     string        `mapstructure:"static_dir"`
	AdminPassword string        `mapstructure:"admin_password"`
	SessionSecret string        `mapstructure:"session_secret"`
	CookieSecure  bool          `mapstructure:"cookie_secure"` // set true behind HTTPS
	PostCacheTTL  time.Duration `mapstructure:"post_cache_ttl"`
	Dev           bool          `mapstructure:"dev"` // show scheduled posts regardless of publish time
}

// Log holds logging settings.
type Log struct {
	Level string `mapstructure:"level"`
}

// EnvPrefix is prepended to every environment override, e.g. BLOG_SITE_POST_PER_PAGE.
const EnvPrefix = "BLOG"

// Load reads configuration. When path is empty, site.yaml in the working
// directory is used if present. The site record is validated before return.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("site")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", describe(path), err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		millisecondsHook,
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := site.Validate(cfg.Site); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func describe(path string) string {
	if path == "" {
		return "site.yaml"
	}
	return path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.database_path", "data/blog.db")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.admin_password", "")
	v.SetDefault("server.session_secret", "")
	v.SetDefault("server.cookie_secure", false)
	v.SetDefault("server.post_cache_ttl", (5 * time.Minute).Milliseconds())
	v.SetDefault("server.dev", false)
	v.SetDefault("log.level", "info")

	d := site.Default()
	v.SetDefault("site.website", d.Website)
	v.SetDefault("site.author", d.Author)
	v.SetDefault("site.profile", d.Profile)
	v.SetDefault("site.og_image", d.OGImage)
	v.SetDefault("site.light_and_dark_mode", d.LightAndDarkMode)
	v.SetDefault("site.post_per_index", d.PostPerIndex)
	v.SetDefault("site.post_per_page", d.PostPerPage)
	v.SetDefault("site.scheduled_post_margin", d.ScheduledPostMargin.Milliseconds())
	v.SetDefault("site.show_archives", d.ShowArchives)
	v.SetDefault("site.show_back_button", d.ShowBackButton)
	v.SetDefault("site.edit_post.enabled", d.EditPost.Enabled)
	v.SetDefault("site.edit_post.url", d.EditPost.URL)
	v.SetDefault("site.dynamic_og_image", d.DynamicOGImage)
	v.SetDefault("site.lang", d.Lang)
	v.SetDefault("site.timezone", d.Timezone)
}

var durationType = reflect.TypeOf(time.Duration(0))

// millisecondsHook decodes bare numbers (and numeric strings, as they
// arrive from the environment) into durations measured in milliseconds.
// Other strings fall through to time.ParseDuration.
func millisecondsHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch n := data.(type) {
	case int:
		return time.Duration(n) * time.Millisecond, nil
	case int64:
		return time.Duration(n) * time.Millisecond, nil
	case uint64:
		return time.Duration(n) * time.Millisecond, nil
	case float64:
		return time.Duration(n * float64(time.Millisecond)), nil
	case string:
		if ms, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return time.Duration(ms) * time.Millisecond, nil
		}
	}
	return data, nil
}
