package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "ytplay"

// Environment variables that override file values.
const (
	EnvProxy      = "YTPLAY_PROXY"
	EnvRemoteAddr = "YTPLAY_REMOTE_ADDR"
)

type Config struct {
	Icons string `koanf:"icons" default:"unicode" validate:"oneof=nerd unicode none"`

	Log     LogConfig     `koanf:"log"`
	Catalog CatalogConfig `koanf:"catalog"`
	Stream  StreamConfig  `koanf:"stream"`
	Lyrics  LyricsConfig  `koanf:"lyrics"`
	Remote  RemoteConfig  `koanf:"remote"`
	Player  PlayerConfig  `koanf:"player"`
	Desktop DesktopConfig `koanf:"desktop"`
}

// LogConfig controls where logs go. The terminal belongs to the UI, so the
// default is a file under the XDG state directory.
type LogConfig struct {
	Output string `koanf:"output" default:"file" validate:"oneof=file stdout stderr"`
	Level  string `koanf:"level" default:"info" validate:"oneof=debug info warn warning error"`
	File   string `koanf:"file"`
}

// CatalogConfig holds YouTube Music search settings.
type CatalogConfig struct {
	SearchLimit     int           `koanf:"search_limit" default:"20" validate:"gte=1,lte=100"`
	FeaturedLimit   int           `koanf:"featured_limit" default:"5" validate:"gte=1,lte=50"`
	FeaturedQueries []string      `koanf:"featured_queries"`
	Timeout         time.Duration `koanf:"timeout" default:"15s" validate:"gt=0"`
}

// StreamConfig holds yt-dlp settings used to resolve audio URLs.
type StreamConfig struct {
	Format  string        `koanf:"format" default:"bestaudio[ext=m4a]/bestaudio" validate:"required"`
	Timeout time.Duration `koanf:"timeout" default:"10s" validate:"gt=0"`
	Proxy   string        `koanf:"proxy" validate:"omitempty,url"`
}

// LyricsConfig holds lrclib settings.
type LyricsConfig struct {
	Enabled  *bool  `koanf:"enabled" default:"true"`
	BaseURL  string `koanf:"base_url" default:"https://lrclib.net" validate:"url"`
	CacheDir string `koanf:"cache_dir"`
}

// RemoteConfig holds the optional remote-control server settings.
type RemoteConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr" default:"127.0.0.1:8765" validate:"hostname_port"`
}

// PlayerConfig holds playback defaults and the audio output.
type PlayerConfig struct {
	DefaultVolume float64 `koanf:"default_volume" default:"0.7" validate:"gte=0,lte=1"`
	// Output selects the audio sink: "speaker" needs ffmpeg and a sound
	// device, "none" only logs, "auto" falls back to "none" when the
	// speaker cannot be opened.
	Output     string `koanf:"output" default:"auto" validate:"oneof=auto speaker none"`
	FFmpeg     string `koanf:"ffmpeg" default:"ffmpeg" validate:"required"`
	Visualizer *bool  `koanf:"visualizer" default:"true"`
}

// DesktopConfig controls desktop integration over D-Bus. Both features are
// silently unavailable without a session bus.
type DesktopConfig struct {
	MPRIS         *bool `koanf:"mpris" default:"true"`
	Notifications bool  `koanf:"notifications"`
}

// MPRISEnabled reports whether media keys and desktop widgets can drive
// playback.
func (c DesktopConfig) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// VisualizerEnabled reports whether the spectrum bars are shown.
func (c PlayerConfig) VisualizerEnabled() bool {
	return c.Visualizer == nil || *c.Visualizer
}

// DefaultFeaturedQueries are the sections shown on the home view.
var DefaultFeaturedQueries = []string{
	"Top Hits 2024",
	"Pop Music",
	"Bollywood Hits",
	"Workout Music",
	"Throwback Songs",
	"Viral Hits",
}

// Load reads the config files in priority order (last wins), then applies
// environment overrides, defaults and validation. explicit, if not empty,
// must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "failed to parse config file %s", path)
			}
		}
	}
	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	_ = defaults.Set(&cfg)
	cfg.normalize()
	return &cfg
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv(EnvProxy); v != "" {
		c.Stream.Proxy = v
	}
	if v := os.Getenv(EnvRemoteAddr); v != "" {
		c.Remote.Addr = v
	}
}

func (c *Config) normalize() {
	if len(c.Catalog.FeaturedQueries) == 0 {
		c.Catalog.FeaturedQueries = append([]string(nil), DefaultFeaturedQueries...)
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(xdg.StateHome, appName, appName+".log")
	}
	c.Log.File = expandPath(c.Log.File)
	if c.Lyrics.CacheDir == "" {
		c.Lyrics.CacheDir = filepath.Join(xdg.CacheHome, appName, "lyrics")
	}
	c.Lyrics.CacheDir = expandPath(c.Lyrics.CacheDir)
}

// LyricsEnabled reports whether lyrics lookups are on.
func (c *Config) LyricsEnabled() bool {
	return c.Lyrics.Enabled == nil || *c.Lyrics.Enabled
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/ytplay/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
