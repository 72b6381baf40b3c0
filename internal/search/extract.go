package search

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeEntry is returned for archive entries that would land outside the
// output directory.
var ErrUnsafeEntry = errors.New("archive entry escapes output directory")

type archiveKind struct {
	stem string
	ext  string
}

// Longest suffix first so "x.tar.gz" is not read as a plain gzip.
var archiveSuffixes = []string{".tar.gz", ".tgz", ".tar", ".zip"}

// archiveKindOf splits an archive file name into stem and extension.
func archiveKindOf(name string) (archiveKind, bool) {
	lower := strings.ToLower(name)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) && len(name) > len(suffix) {
			return archiveKind{
				stem: name[:len(name)-len(suffix)],
				ext:  strings.TrimPrefix(suffix, "."),
			}, true
		}
	}
	return archiveKind{}, false
}

// outputName is "<stem>_<ext>" with dots in the extension turned into
// underscores, e.g. logs.tar.gz -> logs_tar_gz.
func (k archiveKind) outputName() string {
	return k.stem + "_" + strings.ReplaceAll(k.ext, ".", "_")
}

// ExtractArchive unpacks a zip, tar, tar.gz or tgz archive into dest, which
// is created. Only regular files and directories are written.
func ExtractArchive(archivePath, dest string) error {
	kind, ok := archiveKindOf(filepath.Base(archivePath))
	if !ok {
		return fmt.Errorf("not an archive: %s", archivePath)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	switch kind.ext {
	case "zip":
		return extractZip(archivePath, dest)
	case "tar":
		return extractTarFile(archivePath, dest, false)
	default:
		return extractTarFile(archivePath, dest, true)
	}
}

func extractZip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if errors.Is(err, zip.ErrInsecurePath) {
		if zr != nil {
			_ = zr.Close()
		}
		return fmt.Errorf("%w: %s", ErrUnsafeEntry, archivePath)
	}
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer func() {
		_ = zr.Close()
	}()

	for _, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if !f.Mode().IsRegular() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Name, err)
		}
		err = writeFile(target, rc)
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTarFile(archivePath, dest string, gzipped bool) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			// hdr is still valid; safeJoin decides.
			err = nil
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return err
			}
		}
	}
}

func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeEntry, name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return out.Close()
}
