package search

import (
	"errors"
	"log/slog"

	"github.com/kk-code-lab/hlgrep/internal/debuglog"
	fsutil "github.com/kk-code-lab/hlgrep/internal/fs"
)

// ErrNoTerms is returned when there is nothing to search for and view mode
// is off.
var ErrNoTerms = errors.New("no search terms")

// Sink receives the printable part of a scan: file headers, context and
// matched lines, and separators between non-adjacent blocks.
type Sink interface {
	BeginFile(path string)
	Line(number int, text string, hits []Occurrence)
	Separator()
}

// Options configures a Scanner.
type Options struct {
	Terms           []string
	CaseInsensitive bool
	Regexp          bool
	Before          int
	After           int
	// View treats every file as matching when no term is configured.
	View   bool
	Logger *slog.Logger
}

// Result is everything a scan produced. It is owned by the caller once Scan
// returns; the navigator only reads it.
type Result struct {
	Index        *MatchIndex
	Files        []File
	Skipped      []SkippedFile
	NothingFound []string
}

// MatchCount returns the number of recorded matches.
func (r *Result) MatchCount() int {
	return r.Index.Len()
}

// FilesWithMatches returns how many files produced at least one match.
func (r *Result) FilesWithMatches() int {
	return r.Index.Files()
}

// Loader returns a line loader that reads each scanned file the same way the
// scan did.
func (r *Result) Loader() func(path string) ([]string, error) {
	pdf := make(map[string]bool, len(r.Files))
	for _, f := range r.Files {
		if f.PDF {
			pdf[f.Path] = true
		}
	}
	return func(path string) ([]string, error) {
		return LoadLines(File{Path: path, PDF: pdf[path]})
	}
}

// LoadLines reads a file as newline-terminated lines.
func LoadLines(f File) ([]string, error) {
	if f.PDF {
		return fsutil.ReadPDFLines(f.Path)
	}
	return fsutil.ReadLines(f.Path)
}

// Scanner runs the term matcher over a list of files.
type Scanner struct {
	opts    Options
	matcher *Matcher
	sink    Sink
	load    func(File) ([]string, error)
	logger  *slog.Logger
}

// NewScanner validates the options. sink may be nil for a silent scan.
func NewScanner(opts Options, sink Sink) (*Scanner, error) {
	m, err := NewMatcher(opts.Terms, MatcherOptions{CaseInsensitive: opts.CaseInsensitive, Regexp: opts.Regexp})
	if err != nil {
		return nil, err
	}
	if m.Empty() && !opts.View {
		return nil, ErrNoTerms
	}
	if opts.Before < 0 {
		opts.Before = 0
	}
	if opts.After < 0 {
		opts.After = 0
	}
	return &Scanner{
		opts:    opts,
		matcher: m,
		sink:    sink,
		load:    LoadLines,
		logger:  debuglog.OrDiscard(opts.Logger),
	}, nil
}

// Scan reads every listed file in order. Files that fail to load are added
// to the skipped list and the scan moves on.
func (s *Scanner) Scan(list *FileList) *Result {
	res := &Result{Index: NewMatchIndex()}
	if list == nil {
		return res
	}
	res.Skipped = append(res.Skipped, list.Skipped...)

	for _, f := range list.Files {
		lines, err := s.load(f)
		if err != nil {
			s.logger.Debug("skip file", "path", f.Path, "err", err)
			res.Skipped = append(res.Skipped, SkippedFile{Path: f.Path, Reason: err.Error()})
			continue
		}
		res.Files = append(res.Files, f)

		var found bool
		if s.matcher.Empty() {
			found = s.viewFile(f.Path, lines, res.Index)
		} else {
			found = s.scanFile(f.Path, lines, res.Index)
		}
		if !found {
			res.NothingFound = append(res.NothingFound, f.Path)
		}
	}
	s.logger.Debug("scan finished", "files", len(res.Files), "matches", res.Index.Len(), "skipped", len(res.Skipped))
	return res
}

// viewFile records the synthetic whole-file match and streams every line.
func (s *Scanner) viewFile(path string, lines []string, ix *MatchIndex) bool {
	ix.Append(Match{Line: 1, Path: path})
	if s.sink == nil {
		return true
	}
	s.sink.BeginFile(path)
	for i, line := range lines {
		s.sink.Line(i+1, line, nil)
	}
	return true
}

// scanFile appends every hit and streams matched lines with their context.
// lastPrinted tracks the highest line already written so before-context
// never repeats a line that was printed as after-context or as a match.
func (s *Scanner) scanFile(path string, lines []string, ix *MatchIndex) bool {
	found := false
	lastPrinted := 0
	afterLeft := 0
	contextual := s.opts.Before > 0 || s.opts.After > 0

	for i, line := range lines {
		number := i + 1
		hits := s.matcher.FindAll(line)
		if len(hits) == 0 {
			if afterLeft > 0 {
				afterLeft--
				s.emitLine(number, line, nil)
				lastPrinted = number
			}
			continue
		}

		for _, h := range hits {
			ix.Append(Match{Start: h.Start, End: h.End, Line: number, Path: path})
		}

		from := number - s.opts.Before
		if from <= lastPrinted {
			from = lastPrinted + 1
		}
		if !found {
			found = true
			s.emitBegin(path)
		} else if contextual && from > lastPrinted+1 {
			s.emitSeparator()
		}
		for n := from; n < number; n++ {
			s.emitLine(n, lines[n-1], nil)
		}
		s.emitLine(number, line, hits)
		lastPrinted = number
		afterLeft = s.opts.After
	}
	return found
}

func (s *Scanner) emitBegin(path string) {
	if s.sink != nil {
		s.sink.BeginFile(path)
	}
}

func (s *Scanner) emitLine(number int, text string, hits []Occurrence) {
	if s.sink != nil {
		s.sink.Line(number, text, hits)
	}
}

func (s *Scanner) emitSeparator() {
	if s.sink != nil {
		s.sink.Separator()
	}
}
