package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/c2cgpx"
	"github.com/fwojciec/c2cgpx/crawl"
	c2cetree "github.com/fwojciec/c2cgpx/etree"
	"github.com/fwojciec/c2cgpx/goldmark"
	"github.com/fwojciec/c2cgpx/htmltomarkdown"
	c2chttp "github.com/fwojciec/c2cgpx/http"
	"github.com/fwojciec/c2cgpx/mercator"
	c2cprom "github.com/fwojciec/c2cgpx/prometheus"
	c2cslog "github.com/fwojciec/c2cgpx/slog"
	"github.com/fwojciec/c2cgpx/sqlite"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath is read when neither --config nor C2CGPX_CONFIG is set.
	// A missing file at this path is not an error.
	ConfigPath string

	// BaseURL overrides the API root. Set for end-to-end testing.
	BaseURL string

	// SQLite database backing the response cache.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: DefaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfgPath, required := m.ConfigPath, false
	if p := os.Getenv("C2CGPX_CONFIG"); p != "" {
		cfgPath, required = p, true
	}
	if p := configFlag(args); p != "" {
		cfgPath, required = p, true
	}
	cfg, err := LoadConfig(cfgPath, required)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", c2cgpx.ErrorMessage(err))
		return err
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("c2cgpx"),
		kong.Description("Export camptocamp search results as GPX waypoints."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		cfg.Vars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no search URL specified. Run 'c2cgpx --help' for usage")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	langs, err := ParseLanguages(cli.Lang)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", c2cgpx.ErrorMessage(err))
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}
	if cli.MetricsFile != "" {
		deps.Metrics = c2cprom.NewMetrics(nil)
	}

	opts := []c2chttp.Option{
		c2chttp.WithTimeout(cli.Timeout),
		c2chttp.WithUserAgent(cli.UserAgent),
		c2chttp.WithDelay(cli.Delay),
	}
	if m.BaseURL != "" {
		opts = append(opts, c2chttp.WithBaseURL(m.BaseURL))
	}
	if cli.RPS > 0 {
		opts = append(opts, c2chttp.WithLimiter(crawl.NewDomainLimiter(cli.RPS)))
	}

	if !cli.NoCache {
		cache, err := m.openCache(ctx, cli.Cache, cli.TTL, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Use --no-cache or --cache to pick another location")
			return err
		}
		defer m.Close()

		var rc c2cgpx.ResponseCache = cache
		if deps.Metrics != nil {
			rc = c2cprom.NewResponseCache(rc, deps.Metrics)
		}
		if cli.Verbose {
			rc = c2cslog.NewLoggingResponseCache(rc, logger)
		}
		opts = append(opts, c2chttp.WithCache(rc))
	}

	var documents c2cgpx.DocumentService = c2chttp.NewClient(opts...)
	if deps.Metrics != nil {
		documents = c2cprom.NewDocumentService(documents, deps.Metrics)
	}
	if cli.Verbose {
		documents = c2cslog.NewLoggingDocumentService(documents, logger)
	}

	assembler := &c2cgpx.Assembler{
		Formatter:  c2cgpx.NewFormatter(goldmark.NewTransformer(), langs),
		Projection: mercator.WebMercator{},
	}
	if cli.Comments {
		commenter := htmltomarkdown.NewCommenter()
		commenter.MaxLength = cli.CommentLength
		assembler.Commenter = commenter
	}

	deps.Exporter = &crawl.Exporter{
		Documents:   documents,
		Assembler:   assembler,
		Concurrency: cli.Concurrency,
	}

	var writer c2cgpx.WaypointWriter = c2cetree.NewWaypointWriter()
	if cli.Verbose {
		writer = c2cslog.NewLoggingWaypointWriter(writer, logger)
	}
	deps.Writer = writer

	cmd := &ExportCmd{
		URL:         cli.URL,
		Output:      cli.Output,
		MetricsFile: cli.MetricsFile,
	}
	return cmd.Run(deps)
}

// openCache opens the response cache database at path and purges expired
// entries.
func (m *Main) openCache(ctx context.Context, path string, ttl time.Duration, logger *slog.Logger) (*sqlite.ResponseCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open cache at %q: %w", path, err)
	}

	cache := sqlite.NewResponseCache(m.DB, ttl)
	n, err := cache.DeleteExpired(ctx)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("failed to purge cache: %w", err)
	}
	if n > 0 {
		logger.Info("purged expired cache entries", "count", n)
	}
	return cache, nil
}
