package main

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/hlgrep/internal/config"
	"github.com/kk-code-lab/hlgrep/internal/highlight"
	"github.com/kk-code-lab/hlgrep/internal/search"
	"github.com/kk-code-lab/hlgrep/internal/ui/pager"
)

// browse runs the navigator over the scan result. The terminal is restored
// on every return path.
func browse(result *search.Result, cfg *config.Config, annotator *highlight.Annotator, logger *slog.Logger) error {
	if result.Index.Len() == 0 {
		return pager.ErrNothingToNavigate
	}

	var (
		term    *pager.Terminal
		keys    pager.KeySource
		release func() error
		err     error
	)
	switch cfg.Display.Input {
	case "tcell":
		screen, serr := tcell.NewScreen()
		if serr != nil {
			return serr
		}
		if serr := screen.Init(); serr != nil {
			return serr
		}
		reader := pager.NewTcellKeyReader(screen)
		keys, release = reader, reader.Close
		// tcell owns the input mode; the terminal only carries frames.
		term, err = pager.OpenTerminal(false)
	default:
		term, err = pager.OpenTerminal(true)
		if err == nil {
			keys, release = term.KeySource()
		}
	}
	if err != nil {
		if release != nil {
			_ = release()
		}
		return err
	}
	defer func() {
		_ = release()
		_ = term.Close()
	}()

	nav := pager.NewNavigator(result.Index, term.Writer(), pager.Options{
		Annotator:   annotator,
		Load:        result.Loader(),
		Size:        term.Size,
		LineNumbers: cfg.Display.LineNumbers,
		TabWidth:    cfg.Display.TabWidth,
		Logger:      logger,
	})
	return nav.Run(keys)
}
