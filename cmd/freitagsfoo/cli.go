package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/extract"
	ffprom "github.com/fwojciec/freitagsfoo/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Now      func() time.Time
	Pages    freitagsfoo.PageSource
	Renderer freitagsfoo.Renderer
	Writer   freitagsfoo.RecordWriter
	Store    freitagsfoo.RecordStore
	Metrics  *ffprom.Metrics
}

func (d *Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load configuration from a YAML file" env:"FREITAGSFOO_CONFIG"`
	Verbose bool            `short:"v" help:"Log debug output" env:"FREITAGSFOO_VERBOSE"`

	Run     RunCmd     `cmd:"" help:"Extract this week's meetup page and publish it"`
	Parse   ParseCmd   `cmd:"" help:"Extract a local wikitext file or XML export"`
	Show    ShowCmd    `cmd:"" help:"Print an archived record"`
	History HistoryCmd `cmd:"" help:"List archived meetups"`
}

// WikiFlags configure access to the MediaWiki API.
type WikiFlags struct {
	APIURL  string        `name:"api-url" default:"${api_url}" env:"FREITAGSFOO_API_URL" help:"MediaWiki API endpoint"`
	Timeout time.Duration `default:"${timeout}" env:"FREITAGSFOO_TIMEOUT" help:"Timeout per API request"`
	Rate    float64       `default:"${rate}" env:"FREITAGSFOO_RATE" help:"Maximum API requests per second (0 for unlimited)"`
}

// ExtractFlags configure how a page is turned into a record.
type ExtractFlags struct {
	Mode        string `enum:"template,scan" default:"template" env:"FREITAGSFOO_MODE" help:"Read hosts from the first template's arguments or scan the top section for user references (template, scan)"`
	Date        string `env:"FREITAGSFOO_DATE" help:"Meetup date as YYYY-MM-DD; required in scan mode"`
	Description string `enum:"none,render,heuristic" default:"none" env:"FREITAGSFOO_DESCRIPTION" help:"How talk descriptions are produced (none, render, heuristic)"`
	Format      string `enum:"text,markdown" default:"text" env:"FREITAGSFOO_FORMAT" help:"Format of rendered descriptions (text, markdown)"`
}

// extractor builds an Extractor for a meetup on date, which may be empty
// when the page alone decides the date.
func (f ExtractFlags) extractor(date string, renderer freitagsfoo.Renderer) (*extract.Extractor, error) {
	mode, err := extract.ParseTopSectionMode(f.Mode)
	if err != nil {
		return nil, err
	}
	policy, err := extract.ParseDescriptionPolicy(f.Description)
	if err != nil {
		return nil, err
	}
	describer, err := extract.NewDescriber(policy, renderer)
	if err != nil {
		return nil, err
	}
	return &extract.Extractor{
		Mode:         mode,
		FixedDate:    date,
		ExpectedDate: date,
		Describer:    describer,
	}, nil
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Wiki    WikiFlags    `embed:""`
	Extract ExtractFlags `embed:""`

	PagePrefix  string `name:"page-prefix" default:"${page_prefix}" env:"FREITAGSFOO_PAGE_PREFIX" help:"Title prefix of meetup pages"`
	SourceDir   string `name:"source-dir" env:"FREITAGSFOO_SOURCE_DIR" help:"Read pages from a local directory instead of the wiki"`
	Output      string `short:"o" default:"freitagsfoo.json" env:"FREITAGSFOO_OUTPUT" help:"Output file ('-' for stdout)"`
	DB          string `env:"FREITAGSFOO_DB" help:"Also archive the record in this SQLite database"`
	MetricsFile string `name:"metrics-file" env:"FREITAGSFOO_METRICS_FILE" help:"Write run metrics to this Prometheus textfile"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Wiki    WikiFlags    `embed:""`
	Extract ExtractFlags `embed:""`

	File   string `arg:"" help:"Wikitext file, or MediaWiki XML export ending in .xml"`
	Output string `short:"o" default:"-" env:"FREITAGSFOO_OUTPUT" help:"Output file ('-' for stdout)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Date string `arg:"" help:"Meetup date as YYYY-MM-DD"`
	DB   string `default:"${db_path}" env:"FREITAGSFOO_DB" help:"SQLite archive path"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Person string `short:"p" help:"Only meetups this person hosted or spoke at"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of meetups to list"`
	DB     string `default:"${db_path}" env:"FREITAGSFOO_DB" help:"SQLite archive path"`
}
