package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/fs"
	"github.com/fwojciec/freitagsfoo/goquery"
	"github.com/fwojciec/freitagsfoo/htmltomarkdown"
	ffhttp "github.com/fwojciec/freitagsfoo/http"
	ffprom "github.com/fwojciec/freitagsfoo/prometheus"
	ffslog "github.com/fwojciec/freitagsfoo/slog"
	"github.com/fwojciec/freitagsfoo/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default archive path for commands reading the archive.
	DBPath string

	// YAML configuration files loaded when present, lowest priority first.
	ConfigPaths []string

	// Clock used to pick this week's meetup. Defaults to time.Now.
	Now func() time.Time

	// SQLite database, opened for commands that use the archive.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:      defaultDBPath(),
		ConfigPaths: []string{"~/.config/freitagsfoo/config.yaml", "freitagsfoo.yaml"},
		Now:         time.Now,
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("freitagsfoo"),
		kong.Description("Extract the weekly Freitagsfoo meetup page into JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"api_url":     ffhttp.DefaultAPIURL,
			"timeout":     ffhttp.DefaultTimeout.String(),
			"rate":        strconv.FormatFloat(ffhttp.DefaultRate, 'g', -1, 64),
			"page_prefix": freitagsfoo.DefaultPagePrefix,
			"db_path":     m.DBPath,
		},
		kong.Configuration(YAMLConfig, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'freitagsfoo --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	defer m.Close()

	// Wire command-specific dependencies based on command
	switch kongCtx.Selected().Name {
	case "run":
		var pages freitagsfoo.PageSource
		if cli.Run.SourceDir != "" {
			pages = fs.NewPageSource(cli.Run.SourceDir)
		} else {
			pages = ffhttp.NewPageSource(newClient(cli.Run.Wiki))
		}
		deps.Pages = ffslog.NewLoggingPageSource(pages, deps.Logger)
		deps.Renderer = newRenderer(cli.Run.Wiki, cli.Run.Extract, deps.Logger)
		deps.Writer = ffslog.NewLoggingRecordWriter(newRecordWriter(cli.Run.Output, stdout), deps.Logger)

		if cli.Run.DB != "" {
			if err := m.openDB(cli.Run.DB, stderr); err != nil {
				return err
			}
			deps.Store = ffslog.NewLoggingRecordStore(sqlite.NewRecordService(m.DB), deps.Logger)
		}
		if cli.Run.MetricsFile != "" {
			deps.Metrics = ffprom.NewMetrics()
		}

	case "parse":
		deps.Renderer = newRenderer(cli.Parse.Wiki, cli.Parse.Extract, deps.Logger)
		deps.Writer = newRecordWriter(cli.Parse.Output, stdout)

	case "show":
		if err := m.openDB(cli.Show.DB, stderr); err != nil {
			return err
		}
		deps.Store = ffslog.NewLoggingRecordStore(sqlite.NewRecordService(m.DB), deps.Logger)

	case "history":
		if err := m.openDB(cli.History.DB, stderr); err != nil {
			return err
		}
		deps.Store = ffslog.NewLoggingRecordStore(sqlite.NewRecordService(m.DB), deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set FREITAGSFOO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func newClient(w WikiFlags) *ffhttp.Client {
	return ffhttp.NewClient(w.APIURL,
		ffhttp.WithTimeout(w.Timeout),
		ffhttp.WithRate(w.Rate),
	)
}

// newRenderer returns nil unless descriptions are rendered by the wiki.
func newRenderer(w WikiFlags, e ExtractFlags, logger *slog.Logger) freitagsfoo.Renderer {
	if e.Description != "render" {
		return nil
	}

	var text freitagsfoo.TextConverter = goquery.NewTextConverter()
	if e.Format == "markdown" {
		text = htmltomarkdown.NewConverter(siteURL(w.APIURL))
	}

	renderer := goquery.NewRenderer(ffhttp.NewHTMLRenderer(newClient(w)), text)
	return ffslog.NewLoggingRenderer(renderer, logger)
}

// siteURL returns the scheme and host of the wiki's API endpoint.
func siteURL(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "freitagsfoo.db"
	}
	return filepath.Join(home, ".freitagsfoo", "freitagsfoo.db")
}
