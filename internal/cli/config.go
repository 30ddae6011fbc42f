package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/classlink/pkg/cache"
	"github.com/matzehuels/classlink/pkg/errors"
	"github.com/matzehuels/classlink/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the TOML configuration file. Command-line flags override it.
//
//	[render]
//	formats = ["svg", "png"]
//	renderer = "native"
//	padding = 24
//	scale = 2
//	stroke = "#333333"
//	node_fill = "#fffbe6"
//
//	[export]
//	model_name = "Orders"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Render RenderConfig `toml:"render"`
	Export ExportConfig `toml:"export"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Renderer string   `toml:"renderer"`
	Padding  float64  `toml:"padding"`
	Scale    float64  `toml:"scale"`
	Stroke   string   `toml:"stroke"`
	NodeFill string   `toml:"node_fill"`
	NoLabels bool     `toml:"no_labels"`
	Pinned   bool     `toml:"pinned"`
}

type ExportConfig struct {
	ModelName string `toml:"model_name"`
}

type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Renderer: pipeline.DefaultRenderer,
			Padding:  pipeline.DefaultPadding,
			Scale:    pipeline.DefaultScale,
		},
		Export: ExportConfig{ModelName: pipeline.DefaultModelName},
		Cache: CacheConfig{
			Backend:   backendFile,
			RedisAddr: "localhost:6379",
			TTL:       cache.TTLArtifact,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads the config file at path on top of the defaults. An empty
// path means the default location, which may be absent; an explicit path
// must exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if c.Render.Renderer != "" {
		if err := pipeline.ValidateRenderer(c.Render.Renderer); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.renderer")
		}
	}
	return nil
}

// pipelineOptions converts the [render] and [export] sections.
func (c *Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Formats:   c.Render.Formats,
		Renderer:  c.Render.Renderer,
		Padding:   c.Render.Padding,
		Scale:     c.Render.Scale,
		Stroke:    c.Render.Stroke,
		NodeFill:  c.Render.NodeFill,
		NoLabels:  c.Render.NoLabels,
		Pinned:    c.Render.Pinned,
		ModelName: c.Export.ModelName,
	}
}

// configDir returns the config directory using the XDG standard
// (~/.config/classlink/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
