// Package archive unpacks downloaded zip bundles such as font families.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxEntrySize caps the uncompressed size of a single extracted file.
const MaxEntrySize = 32 << 20

// ErrTooLarge is returned when an entry exceeds MaxEntrySize.
var ErrTooLarge = errors.New("archive: entry too large")

// Extract unpacks the entries of zipPath accepted by keep into destDir, preserving
// directory structure. A nil keep accepts every file. Entries that would land outside
// destDir are skipped. Returns the extracted file paths in archive order.
func Extract(zipPath, destDir string, keep func(name string) bool) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	defer r.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || (keep != nil && !keep(f.Name)) {
			continue
		}
		dest := filepath.Join(root, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
			continue
		}
		if f.UncompressedSize64 > MaxEntrySize {
			return extracted, fmt.Errorf("%w: %s", ErrTooLarge, f.Name)
		}
		if err := extractFile(f, dest); err != nil {
			return extracted, err
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("archive: %s: %w", f.Name, err)
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	n, err := io.Copy(out, io.LimitReader(rc, MaxEntrySize+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("archive: %s: %w", f.Name, err)
	}
	if n > MaxEntrySize {
		os.Remove(dest)
		return fmt.Errorf("%w: %s", ErrTooLarge, f.Name)
	}
	return nil
}

// IsZip reports whether path names a zip file.
func IsZip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}
