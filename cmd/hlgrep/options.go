package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/hlgrep/internal/config"
)

type cliOptions struct {
	terms           []string
	caseInsensitive bool
	regexp          bool
	before          int
	after           int
	lineNumbers     bool
	noHighlight     bool
	filesOnly       bool
	interactive     bool
	view            bool
	extract         bool
	pdf             bool
	hidden          bool
	ignore          bool
	skipped         bool
	input           string
	configPath      string
}

func bindFlags(cmd *cobra.Command, o *cliOptions) {
	f := cmd.Flags()
	f.StringSliceVarP(&o.terms, "search", "s", nil, "search term, repeatable or comma separated")
	f.BoolVarP(&o.caseInsensitive, "ignore-case", "i", false, "match case-insensitively")
	f.BoolVarP(&o.regexp, "regexp", "r", false, "treat terms as regular expressions")
	f.IntVarP(&o.before, "before", "b", 0, "show N lines before a match")
	f.IntVarP(&o.after, "after", "a", 0, "show N lines after a match")
	f.BoolVarP(&o.lineNumbers, "line", "l", false, "print line numbers")
	f.BoolVar(&o.noHighlight, "no-highlight", false, "only color the matches")
	f.BoolVarP(&o.filesOnly, "files-only", "f", false, "list matching files only")
	f.BoolVarP(&o.interactive, "interactive", "I", false, "browse matches in a full-screen viewer")
	f.BoolVar(&o.view, "view", false, "show whole files when no term is given")
	f.BoolVarP(&o.extract, "extract", "e", false, "extract zip and tar archives and search their contents")
	f.BoolVar(&o.pdf, "pdf", false, "search the text of PDF documents")
	f.BoolVar(&o.hidden, "hidden", false, "include hidden files and directories")
	f.BoolVar(&o.ignore, "gitignore", false, "skip files excluded by .gitignore, .ignore and .hlgrepignore")
	f.BoolVar(&o.skipped, "skipped", false, "list skipped files and files without matches")
	f.StringVar(&o.input, "input", "", "key source for --interactive: ansi or tcell")
	f.StringVar(&o.configPath, "config", "", "config file path")
}

// applyFlags overrides config values with the flags the user actually set.
// Search terms from the command line are added to the configured defaults.
func applyFlags(cfg *config.Config, cmd *cobra.Command, o *cliOptions) error {
	f := cmd.Flags()
	if f.Changed("search") {
		terms := make([]string, 0, len(cfg.Search.Terms)+len(o.terms))
		terms = append(terms, cfg.Search.Terms...)
		cfg.Search.Terms = append(terms, o.terms...)
	}
	if f.Changed("ignore-case") {
		cfg.Search.CaseInsensitive = o.caseInsensitive
	}
	if f.Changed("regexp") {
		cfg.Search.Regexp = o.regexp
	}
	if f.Changed("before") {
		cfg.Display.Before = o.before
	}
	if f.Changed("after") {
		cfg.Display.After = o.after
	}
	if f.Changed("line") {
		cfg.Display.LineNumbers = o.lineNumbers
	}
	if f.Changed("no-highlight") {
		cfg.Display.Highlight = !o.noHighlight
	}
	if f.Changed("extract") {
		cfg.Files.Extract = o.extract
	}
	if f.Changed("pdf") {
		cfg.Files.PDF = o.pdf
	}
	if f.Changed("hidden") {
		cfg.Files.Hidden = o.hidden
	}
	if f.Changed("gitignore") {
		cfg.Files.Ignore = o.ignore
	}
	if f.Changed("input") {
		cfg.Display.Input = o.input
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
