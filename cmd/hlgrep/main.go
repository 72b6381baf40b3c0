package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/hlgrep/internal/config"
	"github.com/kk-code-lab/hlgrep/internal/debuglog"
	"github.com/kk-code-lab/hlgrep/internal/highlight"
	"github.com/kk-code-lab/hlgrep/internal/search"
	"github.com/kk-code-lab/hlgrep/internal/ui/pager"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	noticeColor = color.New(color.FgCyan)
)

func main() {
	// Keep UTF-8 output working on terminals with an unknown locale.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := newRootCmd().Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "hlgrep: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &cliOptions{}
	cmd := &cobra.Command{
		Use:           "hlgrep [flags] DIRECTORY",
		Short:         "Recursive text search with highlighted output",
		Long:          "hlgrep searches every text file under DIRECTORY for the given terms and prints\nthe matching lines with syntax highlighting, or browses them interactively.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(o.configPath)
			if err != nil {
				return err
			}
			if err := applyFlags(cfg, cmd, o); err != nil {
				return err
			}
			logger, closeLog := debuglog.Open()
			defer func() { _ = closeLog() }()
			return run(args[0], cfg, o, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		},
	}
	bindFlags(cmd, o)
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// run walks dir, scans it and either prints the report or starts the
// navigator.
func run(dir string, cfg *config.Config, o *cliOptions, stdout, stderr io.Writer, logger *slog.Logger) error {
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}
	annotator := highlight.NewAnnotator(
		highlight.WithPalette(palette),
		highlight.WithHighlighting(cfg.Display.Highlight),
	)

	list, err := search.Walk(dir, search.WalkOptions{
		Hidden:      cfg.Files.Hidden,
		Extract:     cfg.Files.Extract,
		PDF:         cfg.Files.PDF,
		BannedTypes: cfg.Files.BannedTypes,
		BannedNames: cfg.Files.BannedNames,
		Ignore:      cfg.Files.Ignore,
		Notify: func(msg string) {
			noticeColor.Fprintln(stderr, msg)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	scanOpts := search.Options{
		Terms:           cfg.Search.Terms,
		CaseInsensitive: cfg.Search.CaseInsensitive,
		Regexp:          cfg.Search.Regexp,
		Before:          cfg.Display.Before,
		After:           cfg.Display.After,
		View:            o.view,
		Logger:          logger,
	}

	if o.interactive {
		scanner, err := search.NewScanner(scanOpts, nil)
		if err != nil {
			return err
		}
		result := scanner.Scan(list)
		err = browse(result, cfg, annotator, logger)
		if errors.Is(err, pager.ErrNothingToNavigate) {
			fmt.Fprintln(stderr, "nothing to navigate")
			return nil
		}
		return err
	}

	printer := search.NewPrinter(stdout, annotator, search.PrinterOptions{
		LineNumbers: cfg.Display.LineNumbers,
		FilesOnly:   o.filesOnly,
	})
	scanner, err := search.NewScanner(scanOpts, printer)
	if err != nil {
		return err
	}
	result := scanner.Scan(list)
	if !o.view || len(cfg.Search.Terms) > 0 {
		printer.Summary(result)
	}
	if o.skipped {
		printer.SkippedReport(result)
	}
	return printer.Flush()
}
