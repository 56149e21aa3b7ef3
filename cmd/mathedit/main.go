// Package main is the entry point for the mathedit command.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/mathedit/internal/config"
	"github.com/dshills/mathedit/internal/engine"
	"github.com/dshills/mathedit/internal/logging"
	"github.com/dshills/mathedit/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	scriptPath string
	code       string
	outPath    string
	readOnly   bool
	dump       bool
	input      string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.readOnly {
		cfg.Editor.ReadOnly = true
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := edit(ctx, opts, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// edit loads the input, runs the scripts and writes the result.
func edit(ctx context.Context, opts options, cfg config.Config, logger *zap.Logger) error {
	in, err := openInput(opts.input)
	if err != nil {
		return err
	}
	defer in.Close()

	engOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndoEntries),
		engine.WithNormalization(cfg.Editor.NormalizeText),
	}
	if cfg.Editor.ReadOnly {
		engOpts = append(engOpts, engine.WithReadOnly())
	}
	eng, err := engine.NewFromReader(in, engOpts...)
	if err != nil {
		return err
	}
	logger.Debug("formula loaded", zap.Stringer("id", eng.ID()))

	runner := script.New(eng,
		script.WithLogger(logger),
		script.WithOutput(os.Stderr),
		script.WithTimeout(time.Duration(cfg.Script.Timeout)),
		script.WithCallStackSize(cfg.Script.CallStackSize))
	defer runner.Close()

	if opts.scriptPath != "" {
		if err := runner.RunFile(ctx, opts.scriptPath); err != nil {
			return err
		}
	}
	if opts.code != "" {
		if err := runner.Run(ctx, "-e", opts.code); err != nil {
			return err
		}
	}

	if err := eng.Validate(); err != nil {
		return fmt.Errorf("formula invalid after editing: %w", err)
	}
	return writeOutput(opts, eng)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func writeOutput(opts options, eng *engine.Engine) error {
	var out io.Writer = os.Stdout
	if opts.outPath != "" && opts.outPath != "-" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if opts.dump {
		_, err := io.WriteString(out, eng.Dump())
		return err
	}
	if _, err := eng.WriteTo(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, err := fmt.Fprintln(out)
	return err
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script to run on the formula")
	flag.StringVar(&opts.scriptPath, "s", "", "Lua script to run on the formula (shorthand)")
	flag.StringVar(&opts.code, "e", "", "Lua code to run after the script")
	flag.StringVar(&opts.outPath, "o", "", "Output file (default stdout)")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Reject all edits")
	flag.BoolVar(&opts.readOnly, "R", false, "Reject all edits (shorthand)")
	flag.BoolVar(&opts.dump, "dump", false, "Print the element outline instead of MathML")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mathedit - scriptable MathML formula editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mathedit [options] [input.mml]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echo '<math></math>' | mathedit -e 'formula.insert_text(\"x\")'\n")
		fmt.Fprintf(os.Stderr, "  mathedit -s edit.lua -o out.mml in.mml\n")
		fmt.Fprintf(os.Stderr, "  mathedit -dump in.mml\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("mathedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.input = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one input file\n")
		os.Exit(1)
	}

	return opts
}
