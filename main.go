package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mcncl/jsonlens/internal/analyzer"
	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/input"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/parser"
	"github.com/mcncl/jsonlens/internal/render"
	"github.com/mcncl/jsonlens/internal/report"
	"github.com/mcncl/jsonlens/internal/sink"
)

// CLI defines the command-line interface
var CLI struct {
	Path    string           `arg:"" help:"Path to the JSON file to analyze." type:"path"`
	Output  string           `help:"Write the report to a file instead of stdout." short:"o" type:"path"`
	Copy    bool             `help:"Copy the rendered report to the system clipboard." short:"c"`
	Pretty  bool             `help:"Pretty-print the JSON report (disable with --no-pretty)." default:"true" negatable:""`
	Text    bool             `help:"Render a human-readable text report instead of JSON." short:"t"`
	Color   string           `help:"Color mode for text output." enum:"auto,always,never" default:"auto"`
	Config  string           `help:"Path to a jsonlens config file." type:"path"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jsonlens"),
		kong.Description("Analyze the structure of a JSON file: type statistics, nesting depth, shape summary and duplicate keys."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jsonlens version %s", Version)},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	applyFlags(cfg, ctx)

	// Analysis failures are embedded in the report payload; only failures
	// of the outer pipeline (usage, config, writing output) exit non-zero.
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// applyFlags layers flags the user actually passed over the loaded
// configuration. Presence comes from the parse context, so an explicit
// --pretty or --color=auto overrides the config file even when it matches
// the flag's default; flags never touched defer to the config file.
func applyFlags(cfg *config.Config, ctx *kong.Context) {
	for _, flag := range ctx.Flags() {
		if !flag.Set {
			continue
		}
		switch flag.Name {
		case "pretty":
			cfg.Output.Pretty = CLI.Pretty
		case "color":
			cfg.Output.Color = CLI.Color
		}
	}
}

// run executes the main program logic
func run(cfg *config.Config) error {
	rep := analyzeFile(CLI.Path, cfg)

	var rendered []byte
	if CLI.Text {
		enabled := render.ColorEnabled(cfg.Output.Color, os.Stdout)
		rendered = render.NewText(enabled).Render(rep)
	} else {
		var err error
		rendered, err = report.Render(rep, report.Options{
			Pretty: cfg.Output.Pretty,
			Indent: cfg.Output.Indent,
		})
		if err != nil {
			return errors.NewOutputError("failed to serialize report", err)
		}
	}

	return sink.WriteAll(rendered, destinations()...)
}

// analyzeFile runs the read, parse and analyze stages and always returns a
// report: either the full structural report or the single-error form.
func analyzeFile(path string, cfg *config.Config) *models.Report {
	data, meta, err := input.ReadFile(path, cfg.Report.AbsolutePaths)
	if err != nil {
		return report.AssembleError(meta.Path, err)
	}

	parsed, err := parser.ParseBytes(data)
	if err != nil {
		return report.AssembleError(meta.Path, err)
	}

	res, err := analyzer.NewAnalyzer().Analyze(parsed.Root)
	if err != nil {
		return report.AssembleError(meta.Path, err)
	}

	return report.Assemble(meta.Path, meta.SizeBytes, res, parsed.Duplicates)
}

// destinations resolves the sinks for this invocation: a file or stdout,
// plus the clipboard when requested.
func destinations() []sink.Sink {
	var sinks []sink.Sink
	if CLI.Output != "" {
		sinks = append(sinks, &sink.File{Path: CLI.Output})
	} else {
		sinks = append(sinks, sink.NewStdout())
	}
	if CLI.Copy {
		sinks = append(sinks, sink.Clipboard{})
	}
	return sinks
}
