package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/hlgrep/internal/debuglog"
	fsutil "github.com/kk-code-lab/hlgrep/internal/fs"
)

// File is one entry of the flat scan list.
type File struct {
	Path string
	PDF  bool
}

// SkippedFile is a file left out of scanning, with the reason why.
type SkippedFile struct {
	Path   string
	Reason string
}

// WalkOptions selects which files the walker hands to the scanner.
type WalkOptions struct {
	Hidden      bool
	Extract     bool
	PDF         bool
	BannedTypes []string
	BannedNames []string
	// Ignore honours .gitignore, .ignore and .hlgrepignore files.
	Ignore bool
	// Notify receives user-facing progress notes such as archive extraction.
	Notify func(msg string)
	Logger *slog.Logger
}

// FileList is the walker's output: files in traversal order plus the files
// it refused.
type FileList struct {
	Files   []File
	Skipped []SkippedFile
}

// Walk traverses root breadth first. Directory entries are visited in name
// order so the resulting list is reproducible. .git directories are never
// entered. Archives are extracted next to themselves when opts.Extract is set
// and the extracted tree is walked too.
func Walk(root string, opts WalkOptions) (*FileList, error) {
	w := &walker{
		opts:        opts,
		logger:      debuglog.OrDiscard(opts.Logger),
		bannedTypes: toSet(opts.BannedTypes, true),
		bannedNames: toSet(opts.BannedNames, false),
		list:        &FileList{},
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	queue := []walkDir{{path: root}}
	if !info.IsDir() {
		queue = queue[:0]
		if extracted := w.visitFile(filepath.Dir(root), root, filepath.Base(root)); extracted != "" {
			queue = append(queue, walkDir{path: extracted})
		}
	} else if opts.Ignore {
		queue[0].rules = rootIgnoreRules(root)
		queue[0].loaded = true
	}

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(dir.path)
		if err != nil {
			w.logger.Debug("read dir failed", "dir", dir.path, "err", err)
			w.skip(dir.path, err.Error())
			continue
		}
		rules := dir.rules
		if opts.Ignore && !dir.loaded {
			rules = rules.with(dir.path)
		}
		for _, entry := range entries {
			name := entry.Name()
			full := filepath.Join(dir.path, name)
			if entry.IsDir() {
				if name == ".git" || (!opts.Hidden && fsutil.IsHidden(full, name)) {
					continue
				}
				if opts.Ignore && rules.ignored(full, true) {
					w.logger.Debug("ignored", "path", full)
					continue
				}
				queue = append(queue, walkDir{path: full, rules: rules})
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}
			if !opts.Hidden && fsutil.IsHidden(full, name) {
				continue
			}
			if opts.Ignore && rules.ignored(full, false) {
				w.logger.Debug("ignored", "path", full)
				continue
			}
			if extracted := w.visitFile(dir.path, full, name); extracted != "" {
				queue = append(queue, walkDir{path: extracted, rules: rules})
			}
		}
	}
	return w.list, nil
}

// walkDir is a queued directory with the ignore rules inherited from its
// parent.
type walkDir struct {
	path   string
	rules  ignoreRules
	loaded bool
}

type walker struct {
	opts        WalkOptions
	logger      *slog.Logger
	bannedTypes map[string]struct{}
	bannedNames map[string]struct{}
	list        *FileList
}

// visitFile classifies one regular file. It returns the directory of a
// freshly extracted archive, or "".
func (w *walker) visitFile(dir, full, name string) string {
	if _, banned := w.bannedNames[name]; banned {
		w.skip(full, "banned file name")
		return ""
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if _, banned := w.bannedTypes[ext]; banned && ext != "" {
		w.skip(full, "banned file type")
		return ""
	}

	if kind, ok := archiveKindOf(name); ok {
		if !w.opts.Extract {
			w.skip(full, "archive")
			return ""
		}
		out, reason := w.extract(dir, full, kind)
		w.skip(full, reason)
		return out
	}

	if ext == "pdf" {
		if !w.opts.PDF {
			w.skip(full, "pdf document")
			return ""
		}
		w.list.Files = append(w.list.Files, File{Path: full, PDF: true})
		return ""
	}

	w.list.Files = append(w.list.Files, File{Path: full})
	return ""
}

// extract unpacks an archive unless its output directory exists. It returns
// the new directory, if any, and the skip reason for the archive itself.
func (w *walker) extract(dir, full string, kind archiveKind) (string, string) {
	out := filepath.Join(dir, kind.outputName())
	if _, err := os.Stat(out); err == nil {
		// The directory shows up in the listing and is walked like any other.
		return "", "archive (already extracted)"
	}
	w.notify(fmt.Sprintf("Extracting %s file %s", kind.ext, full))
	if err := ExtractArchive(full, out); err != nil {
		w.logger.Debug("extract failed", "archive", full, "err", err)
		return "", fmt.Sprintf("extract failed: %v", err)
	}
	return out, "archive (extracted)"
}

func (w *walker) skip(path, reason string) {
	w.list.Skipped = append(w.list.Skipped, SkippedFile{Path: path, Reason: reason})
}

func (w *walker) notify(msg string) {
	if w.opts.Notify != nil {
		w.opts.Notify(msg)
	}
}

func toSet(values []string, trimDot bool) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if trimDot {
			v = strings.ToLower(strings.TrimPrefix(v, "."))
		}
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
