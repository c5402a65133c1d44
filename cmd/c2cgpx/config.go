package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/c2cgpx"
	"github.com/fwojciec/c2cgpx/crawl"
	c2chttp "github.com/fwojciec/c2cgpx/http"
	"github.com/fwojciec/c2cgpx/sqlite"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// AppName is the application name used for XDG directory paths.
const AppName = "c2cgpx"

// Config is the optional YAML configuration file. Every field supplies a
// flag default; environment variables and flags take precedence.
type Config struct {
	Languages     []string `yaml:"languages"`
	Delay         string   `yaml:"delay"`
	Concurrency   int      `yaml:"concurrency"`
	Timeout       string   `yaml:"timeout"`
	RPS           float64  `yaml:"rps"`
	UserAgent     string   `yaml:"user_agent"`
	Cache         string   `yaml:"cache"`
	TTL           string   `yaml:"ttl"`
	Comments      bool     `yaml:"comments"`
	CommentLength int      `yaml:"comment_length"`
}

// DefaultConfigPath returns the configuration file read when none is given.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultCachePath returns the default response cache database.
func DefaultCachePath() string {
	return filepath.Join(xdg.CacheHome, AppName, "responses.db")
}

// LoadConfig reads the configuration file at path. A missing file is an
// error only when required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return &cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, c2cgpx.Errorf(c2cgpx.EINVALID, "invalid config file %s: %v", path, err)
	}
	return &cfg, nil
}

// Vars returns the flag defaults, overridden by the fields set in cfg.
func (cfg *Config) Vars() kong.Vars {
	vars := kong.Vars{
		"lang":           strings.Join(c2cgpx.DefaultLanguages, ","),
		"delay":          c2chttp.DefaultDelay.String(),
		"concurrency":    strconv.Itoa(crawl.DefaultConcurrency),
		"timeout":        c2chttp.DefaultTimeout.String(),
		"rps":            "0",
		"user_agent":     c2chttp.DefaultUserAgent,
		"cache":          DefaultCachePath(),
		"ttl":            sqlite.DefaultTTL.String(),
		"comments":       "false",
		"comment_length": "0",
	}

	if len(cfg.Languages) > 0 {
		vars["lang"] = strings.Join(cfg.Languages, ",")
	}
	if cfg.Delay != "" {
		vars["delay"] = cfg.Delay
	}
	if cfg.Concurrency > 0 {
		vars["concurrency"] = strconv.Itoa(cfg.Concurrency)
	}
	if cfg.Timeout != "" {
		vars["timeout"] = cfg.Timeout
	}
	if cfg.RPS > 0 {
		vars["rps"] = strconv.FormatFloat(cfg.RPS, 'f', -1, 64)
	}
	if cfg.UserAgent != "" {
		vars["user_agent"] = cfg.UserAgent
	}
	if cfg.Cache != "" {
		vars["cache"] = cfg.Cache
	}
	if cfg.TTL != "" {
		vars["ttl"] = cfg.TTL
	}
	if cfg.Comments {
		vars["comments"] = "true"
	}
	if cfg.CommentLength > 0 {
		vars["comment_length"] = strconv.Itoa(cfg.CommentLength)
	}
	return vars
}

// configFlag returns the value of --config in args, if any.
func configFlag(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ParseLanguages validates BCP 47 language tags and reduces each to its
// base language, dropping duplicates. Order is kept.
func ParseLanguages(tags []string) ([]string, error) {
	var langs []string
	seen := make(map[string]bool)
	for _, s := range tags {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		tag, err := language.Parse(s)
		if err != nil {
			return nil, c2cgpx.Errorf(c2cgpx.EINVALID, "invalid language %q", s)
		}
		base, _ := tag.Base()
		lang := base.String()
		if seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	if len(langs) == 0 {
		return nil, c2cgpx.Errorf(c2cgpx.EINVALID, "at least one language required")
	}
	return langs, nil
}
