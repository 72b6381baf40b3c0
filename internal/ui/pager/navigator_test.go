package pager

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/kk-code-lab/hlgrep/internal/search"
)

func buildIndex(matches ...search.Match) *search.MatchIndex {
	ix := search.NewMatchIndex()
	for _, m := range matches {
		ix.Append(m)
	}
	return ix
}

func fakeFiles(files map[string][]string) func(string) ([]string, error) {
	return func(path string) ([]string, error) {
		lines, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return lines, nil
	}
}

func newTestNavigator(t *testing.T, ix *search.MatchIndex, cols, rows int) (*Navigator, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	nav := NewNavigator(ix, &out, Options{
		Load: fakeFiles(map[string][]string{
			"a.log": {"one x\n", "two x\n", "three\n"},
			"b.log": {"x four\n"},
		}),
		Size: func() (int, int) { return cols, rows },
	})
	return nav, &out
}

func threeMatches() *search.MatchIndex {
	return buildIndex(
		search.Match{Path: "a.log", Line: 1, Start: 4, End: 5},
		search.Match{Path: "a.log", Line: 2, Start: 4, End: 5},
		search.Match{Path: "b.log", Line: 1, Start: 0, End: 1},
	)
}

func TestNavigatorEmptyIndex(t *testing.T) {
	nav, out := newTestNavigator(t, search.NewMatchIndex(), 80, 24)
	if err := nav.Start(); !errors.Is(err, ErrNothingToNavigate) {
		t.Fatalf("expected ErrNothingToNavigate, got %v", err)
	}
	if nav.Mode() != ModeIdle {
		t.Fatalf("empty index must never enter viewing, mode %v", nav.Mode())
	}
	if err := nav.Run(NewANSIKeyReader(strings.NewReader("d"))); !errors.Is(err, ErrNothingToNavigate) {
		t.Fatalf("Run should report ErrNothingToNavigate, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be drawn, got %q", out.String())
	}
}

func TestNavigatorStepWrapsAround(t *testing.T) {
	nav, _ := newTestNavigator(t, threeMatches(), 80, 24)
	if err := nav.Start(); err != nil {
		t.Fatal(err)
	}

	nav.Handle(Key{Kind: KeyLeft})
	if got := nav.State().Current; got != 2 {
		t.Fatalf("left from the first match should wrap to 2, got %d", got)
	}
	nav.Handle(Key{Kind: KeyRight})
	if got := nav.State().Current; got != 0 {
		t.Fatalf("right from the last match should wrap to 0, got %d", got)
	}
	nav.Handle(Key{Kind: KeyRight})
	if got := nav.State().Current; got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestNavigatorSingleMatch(t *testing.T) {
	nav, _ := newTestNavigator(t, buildIndex(search.Match{Path: "b.log", Line: 1, Start: 0, End: 1}), 80, 24)
	if err := nav.Start(); err != nil {
		t.Fatal(err)
	}
	for _, k := range []Key{{Kind: KeyRight}, {Kind: KeyLeft}, {Kind: KeyRight, Modifier: true}, {Kind: KeyLeft, Modifier: true}} {
		nav.Handle(k)
		if got := nav.State().Current; got != 0 {
			t.Fatalf("%v should stay on the only match, got %d", k, got)
		}
	}
}

func TestNavigatorJumpFile(t *testing.T) {
	tests := []struct {
		name  string
		start int
		key   Key
		want  int
	}{
		{name: "right leaves a.log", start: 0, key: Key{Kind: KeyRight, Modifier: true}, want: 2},
		{name: "right from second a.log match", start: 1, key: Key{Kind: KeyRight, Modifier: true}, want: 2},
		{name: "right at last file stops", start: 2, key: Key{Kind: KeyRight, Modifier: true}, want: 2},
		{name: "left leaves b.log", start: 2, key: Key{Kind: KeyLeft, Modifier: true}, want: 1},
		{name: "left at first match stops", start: 0, key: Key{Kind: KeyLeft, Modifier: true}, want: 0},
		{name: "left inside a.log walks to start", start: 1, key: Key{Kind: KeyLeft, Modifier: true}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, _ := newTestNavigator(t, threeMatches(), 80, 24)
			if err := nav.Start(); err != nil {
				t.Fatal(err)
			}
			for nav.State().Current != tt.start {
				nav.Handle(Key{Kind: KeyRight})
			}
			nav.Handle(tt.key)
			if got := nav.State().Current; got != tt.want {
				t.Fatalf("got %d want %d", got, tt.want)
			}
		})
	}
}

func TestNavigatorIgnoresUnknownKeys(t *testing.T) {
	nav, _ := newTestNavigator(t, threeMatches(), 80, 24)
	if err := nav.Start(); err != nil {
		t.Fatal(err)
	}
	before := nav.State()
	if nav.Handle(Key{Kind: KeyUnknown}) {
		t.Fatalf("unknown key should not request a redraw")
	}
	if nav.State() != before || nav.Mode() != ModeViewing {
		t.Fatalf("unknown key changed state: %+v mode %v", nav.State(), nav.Mode())
	}
}

func TestNavigatorHelpDismissal(t *testing.T) {
	nav, _ := newTestNavigator(t, threeMatches(), 80, 24)
	if err := nav.Start(); err != nil {
		t.Fatal(err)
	}
	if !nav.Handle(Key{Kind: KeyShowHelp}) || nav.Mode() != ModeHelp {
		t.Fatalf("expected help mode, got %v", nav.Mode())
	}
	if nav.Handle(Key{Kind: KeyUnknown}) || nav.Mode() != ModeHelp {
		t.Fatalf("unknown key should keep help open, got %v", nav.Mode())
	}
	nav.Handle(Key{Kind: KeyRight})
	if nav.Mode() != ModeViewing || nav.State().Current != 1 {
		t.Fatalf("key in help should close it and act, mode %v current %d", nav.Mode(), nav.State().Current)
	}

	nav.Handle(Key{Kind: KeyShowHelp})
	nav.Handle(Key{Kind: KeyQuit})
	if nav.Mode() != ModeExiting {
		t.Fatalf("quit from help should exit, got %v", nav.Mode())
	}
}

func TestNavigatorScrollClamp(t *testing.T) {
	// 12 rows leave 10 content rows; the anchor sits on row 5.
	nav, _ := newTestNavigator(t, threeMatches(), 80, 12)
	if err := nav.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		nav.Handle(Key{Kind: KeyUp})
	}
	if got := nav.State().Scroll; got != -4 {
		t.Fatalf("scroll up should clamp at -4, got %d", got)
	}
	for i := 0; i < 40; i++ {
		nav.Handle(Key{Kind: KeyDown})
	}
	if got := nav.State().Scroll; got != 5 {
		t.Fatalf("scroll down should clamp at 5, got %d", got)
	}
	nav.Handle(Key{Kind: KeyRight})
	if got := nav.State().Scroll; got != 0 {
		t.Fatalf("moving to another match should reset scroll, got %d", got)
	}
}

func TestNavigatorToggleLineNumbers(t *testing.T) {
	nav, _ := newTestNavigator(t, threeMatches(), 80, 24)
	if err := nav.Start(); err != nil {
		t.Fatal(err)
	}
	nav.Handle(Key{Kind: KeyToggleLineNumbers})
	if !nav.State().LineNumbers {
		t.Fatalf("line numbers should be on")
	}
	nav.Handle(Key{Kind: KeyToggleLineNumbers})
	if nav.State().LineNumbers {
		t.Fatalf("line numbers should be off")
	}
}

func TestNavigatorRun(t *testing.T) {
	nav, out := newTestNavigator(t, threeMatches(), 80, 24)
	keys := NewANSIKeyReader(strings.NewReader("d\x1b[Cq"))
	if err := nav.Run(keys); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if nav.Mode() != ModeExiting {
		t.Fatalf("expected exiting, got %v", nav.Mode())
	}
	if got := nav.State().Current; got != 2 {
		t.Fatalf("expected current 2, got %d", got)
	}
	if !strings.Contains(out.String(), "b.log  [3/3]  line 1") {
		t.Fatalf("last frame should show b.log header, got %q", out.String())
	}
}

func TestNavigatorRunEndsOnEOF(t *testing.T) {
	nav, _ := newTestNavigator(t, threeMatches(), 80, 24)
	if err := nav.Run(NewANSIKeyReader(strings.NewReader("j"))); err != nil {
		t.Fatalf("EOF should end the session cleanly, got %v", err)
	}
	if nav.Mode() != ModeExiting {
		t.Fatalf("expected exiting, got %v", nav.Mode())
	}
}

func TestNavigatorResizeKeepsHelpOpen(t *testing.T) {
	nav, _ := newTestNavigator(t, threeMatches(), 80, 24)
	if err := nav.Start(); err != nil {
		t.Fatal(err)
	}
	nav.Handle(Key{Kind: KeyShowHelp})
	if !nav.Handle(Key{Kind: KeyResize}) {
		t.Fatalf("resize should request a redraw")
	}
	if nav.Mode() != ModeHelp {
		t.Fatalf("resize should not close help, got %v", nav.Mode())
	}
}
