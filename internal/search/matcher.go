package search

import (
	"fmt"
	"regexp"
	"sort"
)

// MatcherOptions controls how search terms are interpreted.
type MatcherOptions struct {
	CaseInsensitive bool
	Regexp          bool
}

// Occurrence is one term hit within a line.
type Occurrence struct {
	Start int
	End   int
	Term  int
}

// Matcher finds every occurrence of every configured term in a line.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles terms. Literal terms are quoted so only Regexp mode
// interprets metacharacters. Empty terms are ignored.
func NewMatcher(terms []string, opts MatcherOptions) (*Matcher, error) {
	m := &Matcher{}
	for _, term := range terms {
		if term == "" {
			continue
		}
		expr := term
		if !opts.Regexp {
			expr = regexp.QuoteMeta(term)
		}
		if opts.CaseInsensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile search term %q: %w", term, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// Empty reports whether no usable term was configured.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// FindAll returns all occurrences in line ordered left to right; hits that
// start at the same offset keep term order. Zero-width hits are skipped.
func (m *Matcher) FindAll(line string) []Occurrence {
	if m.Empty() {
		return nil
	}
	var found []Occurrence
	for term, re := range m.patterns {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[1] <= loc[0] {
				continue
			}
			found = append(found, Occurrence{Start: loc[0], End: loc[1], Term: term})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Start < found[j].Start
	})
	return found
}
