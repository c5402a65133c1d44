package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/c2cgpx"
	"github.com/fwojciec/c2cgpx/crawl"
	c2cprom "github.com/fwojciec/c2cgpx/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Exporter *crawl.Exporter
	Writer   c2cgpx.WaypointWriter

	// Metrics is nil unless a metrics file was requested.
	Metrics *c2cprom.Metrics
}

// CLI defines the command-line interface structure for Kong.
// Defaults are interpolated from the configuration file.
type CLI struct {
	URL    string `arg:"" help:"Camptocamp search URL, e.g. https://www.camptocamp.org/routes?act=rock_climbing"`
	Output string `short:"o" type:"path" help:"Output GPX file (default: <type>.gpx)"`

	Lang        []string      `default:"${lang}" env:"C2CGPX_LANG" help:"Preferred locale languages, in order"`
	Delay       time.Duration `default:"${delay}" env:"C2CGPX_DELAY" help:"Pause after each uncached document request"`
	Concurrency int           `short:"c" default:"${concurrency}" env:"C2CGPX_CONCURRENCY" help:"Concurrent document fetches"`
	Timeout     time.Duration `short:"t" default:"${timeout}" env:"C2CGPX_TIMEOUT" help:"HTTP request timeout"`
	RPS         float64       `name:"rps" default:"${rps}" env:"C2CGPX_RPS" help:"Requests per second per host (0: unlimited)"`
	UserAgent   string        `default:"${user_agent}" env:"C2CGPX_USER_AGENT" help:"User-Agent header"`

	Cache   string        `type:"path" default:"${cache}" env:"C2CGPX_CACHE" help:"Response cache database"`
	TTL     time.Duration `name:"ttl" default:"${ttl}" env:"C2CGPX_TTL" help:"Response cache lifetime"`
	NoCache bool          `help:"Disable the response cache"`

	Comments      bool `default:"${comments}" help:"Add plain-text comments to waypoints"`
	CommentLength int  `default:"${comment_length}" help:"Maximum comment length in characters (0: unlimited)"`

	MetricsFile string `type:"path" env:"C2CGPX_METRICS_FILE" help:"Write Prometheus metrics to this file"`
	Config      string `type:"path" env:"C2CGPX_CONFIG" help:"YAML configuration file"`
	Verbose     bool   `short:"v" help:"Log requests and cache activity"`
}

// ExportCmd writes the waypoints of one search to a GPX file.
type ExportCmd struct {
	URL         string
	Output      string
	MetricsFile string
}
