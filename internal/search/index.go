package search

// Match is one located occurrence of a search term. Line is 1-based; Start
// and End are byte offsets into that line. A synthetic whole-file match has
// Start == End.
type Match struct {
	Start int
	End   int
	Line  int
	Path  string
}

type lineKey struct {
	path string
	line int
}

// MatchIndex is an append-only, discovery-ordered list of matches. It is
// written only while scanning and read afterwards.
type MatchIndex struct {
	matches []Match
	byLine  map[lineKey][]int
	files   int
	last    string
}

// NewMatchIndex returns an empty index.
func NewMatchIndex() *MatchIndex {
	return &MatchIndex{byLine: make(map[lineKey][]int)}
}

// Append records m at the end of the index.
func (ix *MatchIndex) Append(m Match) {
	if len(ix.matches) == 0 || m.Path != ix.last {
		ix.files++
		ix.last = m.Path
	}
	key := lineKey{path: m.Path, line: m.Line}
	ix.byLine[key] = append(ix.byLine[key], len(ix.matches))
	ix.matches = append(ix.matches, m)
}

// Len returns the number of matches.
func (ix *MatchIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.matches)
}

// At returns the i-th match in discovery order.
func (ix *MatchIndex) At(i int) Match {
	return ix.matches[i]
}

// Files returns how many distinct file runs the index holds.
func (ix *MatchIndex) Files() int {
	return ix.files
}

// InLine returns the positions of all matches on one line of one file.
func (ix *MatchIndex) InLine(path string, line int) []int {
	return ix.byLine[lineKey{path: path, line: line}]
}
