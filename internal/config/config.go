package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Listen         string `yaml:"listen"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
		PidFile        string `yaml:"pid_file"`
		// H2C serves cleartext HTTP/2 next to HTTP/1.1.
		H2C bool `yaml:"h2c"`
	} `yaml:"server"`

	Bundler struct {
		// ProjectRoot is the directory entry files are resolved against.
		// Relative values are taken relative to the config file.
		ProjectRoot     string   `yaml:"project_root"`
		Platforms       []string `yaml:"platforms"`
		TransformPrefix string   `yaml:"transform_prefix"`
	} `yaml:"bundler"`

	Cache struct {
		// Size is the number of resolved URLs kept in memory. 0 disables the cache.
		Size int `yaml:"size"`
	} `yaml:"cache"`

	Logging struct {
		Level         string `yaml:"level"`
		AccessLog     bool   `yaml:"access_log"`
		AccessLogPath string `yaml:"access_log_path"`
	} `yaml:"logging"`

	Watch struct {
		Enabled    bool `yaml:"enabled"`
		DebounceMs int  `yaml:"debounce_ms"`
	} `yaml:"watch"`

	path string
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string { return c.path }

// PlatformSet returns the configured platforms as a lookup set.
func (c *Config) PlatformSet() bundleurl.PlatformSet {
	return bundleurl.NewPlatformSet(c.Bundler.Platforms...)
}

func newDefault() *Config {
	cfg := &Config{}
	cfg.Server.H2C = true
	cfg.Cache.Size = 1024
	cfg.Logging.AccessLog = true
	cfg.Watch.Enabled = true
	cfg.Bundler.Platforms = []string{"ios", "android"}
	return cfg
}

// Load reads a YAML config file, then applies defaults and BURL_* env overrides.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config path comes from trusted flag.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := newDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.path = path
	return finish(cfg)
}

// LoadIfExists behaves like Load but falls back to defaults when path is empty
// or the file does not exist.
func LoadIfExists(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		cfg, err := Load(path)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}
	return finish(newDefault())
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	if err := resolveProjectRoot(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = ":8081"
	}
	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = 60000
	}
	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = 60000
	}
	if strings.TrimSpace(cfg.Bundler.TransformPrefix) == "" {
		cfg.Bundler.TransformPrefix = bundleurl.DefaultTransformPrefix
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Watch.DebounceMs <= 0 {
		cfg.Watch.DebounceMs = 200
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("BURL_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("BURL_PROJECT_ROOT")); v != "" {
		cfg.Bundler.ProjectRoot = v
	}
	if v, ok := os.LookupEnv("BURL_PLATFORMS"); ok {
		cfg.Bundler.Platforms = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("BURL_TRANSFORM_PREFIX")); v != "" {
		cfg.Bundler.TransformPrefix = v
	}
	if v := strings.TrimSpace(os.Getenv("BURL_PID_FILE")); v != "" {
		cfg.Server.PidFile = v
	}
	if v := strings.TrimSpace(os.Getenv("BURL_CACHE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Size = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BURL_READ_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.ReadTimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BURL_WRITE_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.WriteTimeoutMs = n
		}
	}
	cfg.Server.H2C = envBool("BURL_H2C", cfg.Server.H2C)
	cfg.Logging.AccessLog = envBool("BURL_ACCESS_LOG", cfg.Logging.AccessLog)
	cfg.Watch.Enabled = envBool("BURL_WATCH_ENABLED", cfg.Watch.Enabled)
}

// resolveProjectRoot makes the project root absolute. An unset root means the
// working directory; a relative one is anchored at the config file.
func resolveProjectRoot(cfg *Config) error {
	root := strings.TrimSpace(cfg.Bundler.ProjectRoot)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("bundler.project_root: %w", err)
		}
		cfg.Bundler.ProjectRoot = wd
		return nil
	}
	if !filepath.IsAbs(root) && cfg.path != "" {
		root = filepath.Join(filepath.Dir(cfg.path), root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("bundler.project_root: %w", err)
	}
	cfg.Bundler.ProjectRoot = abs
	return nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Bundler.ProjectRoot) == "" {
		return errors.New("bundler.project_root is required (or set BURL_PROJECT_ROOT)")
	}
	if !filepath.IsAbs(cfg.Bundler.ProjectRoot) {
		return fmt.Errorf("bundler.project_root must be absolute: %q", cfg.Bundler.ProjectRoot)
	}
	if cfg.Cache.Size < 0 {
		return errors.New("cache.size must be non-negative")
	}
	seen := make(map[string]struct{}, len(cfg.Bundler.Platforms))
	for i, p := range cfg.Bundler.Platforms {
		p = strings.TrimSpace(p)
		if p == "" {
			return fmt.Errorf("bundler.platforms[%d] is empty", i)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("bundler.platforms: duplicate %q", p)
		}
		seen[p] = struct{}{}
		cfg.Bundler.Platforms[i] = p
	}
	return nil
}

func splitList(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
