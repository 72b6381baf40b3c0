package search

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/hlgrep/internal/highlight"
)

const (
	yellow    = "\x1b[38;2;255;255;0m"
	lightBlue = "\x1b[38;2;50;150;255m"
	green     = "\x1b[38;2;0;255;0m"
	red       = "\x1b[38;2;255;0;0m"
	matchFg   = "\x1b[38;2;255;255;255m"
	matchBg   = "\x1b[48;2;140;0;0m"
)

func TestPrinterStreamsHighlightedLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, highlight.NewAnnotator(), PrinterOptions{LineNumbers: true})

	p.BeginFile("a.log")
	p.Line(3, "a test\n", []Occurrence{{Start: 2, End: 6}})
	p.Separator()
	p.Line(10, "plain\n", nil)
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}

	want := yellow + "a.log" + highlight.Reset + "\n" +
		lightBlue + "    3:" + highlight.Reset + "a " + matchFg + matchBg + "test" + highlight.Reset + "\n" +
		lightBlue + "------" + highlight.Reset + "\n" +
		lightBlue + "   10:" + highlight.Reset + "plain\n"
	if buf.String() != want {
		t.Fatalf("output mismatch\n got %q\nwant %q", buf.String(), want)
	}
}

func TestPrinterNoHighlightUsesPlainMatchColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, highlight.NewAnnotator(highlight.WithHighlighting(false)), PrinterOptions{})
	p.Line(1, "INFO test\n", []Occurrence{{Start: 5, End: 9}})
	_ = p.Flush()

	want := "INFO " + red + "test" + highlight.Reset + "\n"
	if buf.String() != want {
		t.Fatalf("output mismatch\n got %q\nwant %q", buf.String(), want)
	}
}

func TestPrinterNeutralisesControlBytesInPaths(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, nil, PrinterOptions{})
	p.BeginFile("evil\x1b]0;owned\x07.log")
	p.SkippedReport(&Result{
		Skipped:      []SkippedFile{{Path: "x\x1b[2J.bin", Reason: "binary"}},
		NothingFound: []string{"rlo" + string(rune(0x202E)) + "gol.txt"},
	})
	_ = p.Flush()

	out := buf.String()
	for _, want := range []string{
		yellow + "evil?]0;owned?.log" + highlight.Reset + "\n",
		red + "x?[2J.bin" + highlight.Reset + " (binary)\n",
		red + "rlo⟪RLO⟫gol.txt" + highlight.Reset + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q\noutput: %q", want, out)
		}
	}
	if strings.Contains(out, "\x1b]") || strings.Contains(out, "\x1b[2J") {
		t.Fatalf("raw escape sequence from a path reached the output: %q", out)
	}
}

func TestPrinterFilesOnly(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.log": "test\ntest\n",
		"b.log": "none\n",
	})
	var buf bytes.Buffer
	p := NewPrinter(&buf, nil, PrinterOptions{FilesOnly: true})
	s, err := NewScanner(Options{Terms: []string{"test"}, Before: 1}, p)
	if err != nil {
		t.Fatal(err)
	}
	s.Scan(&FileList{Files: []File{{Path: filepath.Join(root, "a.log")}, {Path: filepath.Join(root, "b.log")}}})
	_ = p.Flush()

	want := yellow + filepath.Join(root, "a.log") + highlight.Reset + "\n"
	if buf.String() != want {
		t.Fatalf("files-only output got %q want %q", buf.String(), want)
	}
}

func TestPrinterSummaryAndSkipped(t *testing.T) {
	ix := NewMatchIndex()
	ix.Append(Match{Start: 0, End: 1, Line: 1, Path: "a.log"})
	ix.Append(Match{Start: 0, End: 1, Line: 2, Path: "a.log"})
	ix.Append(Match{Start: 0, End: 1, Line: 1, Path: "b.log"})
	res := &Result{
		Index:        ix,
		Skipped:      []SkippedFile{{Path: "x.bin", Reason: "banned file type"}},
		NothingFound: []string{"c.log"},
	}

	var buf bytes.Buffer
	p := NewPrinter(&buf, nil, PrinterOptions{})
	p.Summary(res)
	p.SkippedReport(res)
	_ = p.Flush()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []string{
		green + "Found 3 matches inside 2 different files" + highlight.Reset,
		yellow + "Skipped:" + highlight.Reset,
		red + "x.bin" + highlight.Reset + " (banned file type)",
		yellow + "Found nothing:" + highlight.Reset,
		red + "c.log" + highlight.Reset,
	}
	if len(lines) != len(want) {
		t.Fatalf("got %q want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d got %q want %q", i, lines[i], want[i])
		}
	}
}
