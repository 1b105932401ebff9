// Package main provides the CLI entry point for hanjitxt, a text
// extraction tool for HWP and HWPX documents.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/hanjilab/hanji"
	"github.com/hanjilab/hanji/model"
)

// CLI defines the command-line interface using Kong.
var CLI struct {
	File string `arg:"" help:"HWP or HWPX document to read." type:"existingfile"`

	Text     bool `help:"Print extracted plain text (default)." xor:"mode"`
	JSON     bool `help:"Print the full document model as indented JSON." xor:"mode"`
	Markdown bool `help:"Print the document rendered as markdown." xor:"mode"`
	Meta     bool `help:"Print document metadata and exit." xor:"mode"`

	Config         string        `short:"c" help:"YAML tuning profile; explicit flags override it." type:"existingfile"`
	MinTextLength  int           `default:"500" help:"Minimum number of characters a decode strategy must produce to be accepted."`
	NoiseThreshold float64       `default:"0.01" help:"Fraction of dropped characters above which a decoded section is rejected."`
	MaxRecords     int           `help:"Maximum records decoded per body section (0 = unlimited)."`
	Timeout        time.Duration `help:"Wall-clock budget for record decoding (0 = unlimited)."`

	Verbose bool `short:"v" help:"Enable debug logging." xor:"level"`
	Quiet   bool `short:"q" help:"Only log errors." xor:"level"`
}

// Flag defaults, needed to tell "left alone" from "explicitly set" when a
// tuning profile supplies the same knobs.
const (
	defaultMinTextLength  = 500
	defaultNoiseThreshold = 0.01
)

// profile is the YAML tuning file accepted by --config. Zero values leave
// the corresponding flag untouched.
type profile struct {
	MinTextLength  int           `yaml:"min_text_length"`
	NoiseThreshold float64       `yaml:"noise_threshold"`
	MaxRecords     int           `yaml:"max_records"`
	Timeout        time.Duration `yaml:"timeout"`
}

func loadProfile(path string) (profile, error) {
	var p profile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse yaml: %w", err)
	}
	return p, nil
}

// applyProfile overlays profile values onto flags still at their defaults,
// so an explicit flag always wins over the file.
func applyProfile(p profile) {
	if CLI.MinTextLength == defaultMinTextLength && p.MinTextLength > 0 {
		CLI.MinTextLength = p.MinTextLength
	}
	if CLI.NoiseThreshold == defaultNoiseThreshold && p.NoiseThreshold > 0 {
		CLI.NoiseThreshold = p.NoiseThreshold
	}
	if CLI.MaxRecords == 0 && p.MaxRecords > 0 {
		CLI.MaxRecords = p.MaxRecords
	}
	if CLI.Timeout == 0 && p.Timeout > 0 {
		CLI.Timeout = p.Timeout
	}
}

// debugLogger forwards the extractor's progress events to zerolog.
type debugLogger struct{}

func (debugLogger) Debugf(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	kong.Parse(&CLI,
		kong.Name("hanjitxt"),
		kong.Description("Extract text, structure, and metadata from HWP and HWPX documents."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	switch {
	case CLI.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case CLI.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(); err != nil {
		log.Error().Err(err).Str("file", CLI.File).Msg("extraction failed")
		os.Exit(1)
	}
}

func run() error {
	if CLI.Config != "" {
		p, err := loadProfile(CLI.Config)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}
		applyProfile(p)
	}

	ex := hanji.Open(CLI.File).
		MinTextLength(CLI.MinTextLength).
		NoiseThreshold(CLI.NoiseThreshold).
		MaxRecords(CLI.MaxRecords).
		MaxDecodeTime(CLI.Timeout).
		WithLogger(debugLogger{})

	switch {
	case CLI.JSON:
		doc, warns, err := ex.Document()
		if err != nil {
			return err
		}
		logWarnings(warns)
		b, err := doc.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	case CLI.Markdown:
		md, warns, err := ex.Markdown()
		if err != nil {
			return err
		}
		logWarnings(warns)
		fmt.Print(md)
	case CLI.Meta:
		meta, warns, err := ex.Metadata()
		if err != nil {
			return err
		}
		logWarnings(warns)
		printMetadata(meta)
	default:
		text, warns, err := ex.Text()
		if err != nil {
			return err
		}
		logWarnings(warns)
		fmt.Println(text)
	}
	return nil
}

func logWarnings(warns []hanji.Warning) {
	for _, w := range warns {
		log.Warn().Str("code", w.Code).Msg(w.Message)
	}
}

func printMetadata(meta *model.Metadata) {
	if meta.IsZero() {
		fmt.Println("no metadata")
		return
	}
	if meta.Title != "" {
		fmt.Println("Title:", meta.Title)
	}
	if meta.Subject != "" {
		fmt.Println("Subject:", meta.Subject)
	}
	if meta.Author != "" {
		fmt.Println("Author:", meta.Author)
	}
	if meta.Keywords != "" {
		fmt.Println("Keywords:", meta.Keywords)
	}
	if meta.Language != "" {
		fmt.Println("Language:", meta.Language)
	}
	if meta.CreatedDate != nil {
		fmt.Println("Created:", meta.CreatedDate.Format(time.RFC3339))
	}
	if meta.ModifiedDate != nil {
		fmt.Println("Modified:", meta.ModifiedDate.Format(time.RFC3339))
	}
}
