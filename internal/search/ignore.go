package search

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ignoreFiles are read in every walked directory, lowest priority first.
var ignoreFiles = []string{".gitignore", ".ignore", ".hlgrepignore"}

type ignoreRule struct {
	segments []string
	negate   bool
	dirOnly  bool
	// anchored rules match the path relative to base; the rest match the
	// entry name at any depth.
	anchored bool
	base     string
}

// ignoreRules is the ordered rule set in effect for one directory. The last
// matching rule wins, so a negation can re-include a file.
type ignoreRules []ignoreRule

// parseIgnore reads gitignore syntax. Patterns are kept in path.Match form,
// so backslash escapes inside a pattern are handled by the matcher.
func parseIgnore(content, base string) ignoreRules {
	var rules ignoreRules
	for _, line := range strings.Split(content, "\n") {
		line = trimIgnoreSpaces(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rule := ignoreRule{base: base}
		switch {
		case strings.HasPrefix(line, "!"):
			rule.negate = true
			line = line[1:]
		case strings.HasPrefix(line, `\!`), strings.HasPrefix(line, `\#`):
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			rule.dirOnly = true
			line = strings.TrimRight(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			rule.anchored = true
			line = strings.TrimLeft(line, "/")
		}
		if line == "" {
			continue
		}
		if strings.Contains(line, "/") {
			rule.anchored = true
		}
		rule.segments = strings.Split(line, "/")
		rules = append(rules, rule)
	}
	return rules
}

// trimIgnoreSpaces drops trailing spaces that are not backslash escaped.
func trimIgnoreSpaces(line string) string {
	end := len(line)
	for end > 0 && line[end-1] == ' ' {
		slashes := 0
		for i := end - 2; i >= 0 && line[i] == '\\'; i-- {
			slashes++
		}
		if slashes%2 == 1 {
			break
		}
		end--
	}
	return line[:end]
}

// with returns the rules for dir: the inherited rules plus the ignore files
// found in dir. The receiver is never modified.
func (r ignoreRules) with(dir string) ignoreRules {
	out := r[:len(r):len(r)]
	for _, name := range ignoreFiles {
		out = append(out, readIgnoreFile(filepath.Join(dir, name), dir)...)
	}
	return out
}

func readIgnoreFile(file, base string) ignoreRules {
	data, err := os.ReadFile(file)
	if err != nil || len(data) == 0 {
		return nil
	}
	return parseIgnore(string(data), base)
}

// rootIgnoreRules loads the repository exclude file when root is a git
// work tree, followed by root's own ignore files.
func rootIgnoreRules(root string) ignoreRules {
	rules := readIgnoreFile(filepath.Join(root, ".git", "info", "exclude"), root)
	return rules.with(root)
}

// ignored reports whether full is excluded.
func (r ignoreRules) ignored(full string, isDir bool) bool {
	ignored := false
	for _, rule := range r {
		if rule.dirOnly && !isDir {
			continue
		}
		rel, err := filepath.Rel(rule.base, full)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		if rule.matches(filepath.ToSlash(rel)) {
			ignored = !rule.negate
		}
	}
	return ignored
}

func (rule ignoreRule) matches(rel string) bool {
	if !rule.anchored {
		return matchSegments(rule.segments, []string{path.Base(rel)})
	}
	return matchSegments(rule.segments, strings.Split(rel, "/"))
}

// matchSegments matches a slash separated pattern one path element at a
// time. "**" matches any number of elements, including none.
func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
