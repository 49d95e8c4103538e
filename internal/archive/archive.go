// Package archive writes compressed container files.
package archive

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// Extension is the file extension of archives produced by this package.
const Extension = ".zip"

// Writer adds entries to an archive.
// Entries are written once and never modified; Close finalizes the container.
type Writer interface {
	// Add writes a single entry named name holding content.
	Add(name string, content []byte, modTime time.Time) error

	// Close flushes and finalizes the archive. It does not close the
	// underlying io.Writer.
	Close() error
}

// ZipWriter is a Writer producing zip archives with Deflate compression.
type ZipWriter struct {
	zw      *zip.Writer
	entries int
	closed  bool
}

// NewZipWriter creates a ZipWriter writing to w.
func NewZipWriter(w io.Writer) *ZipWriter {
	return &ZipWriter{zw: zip.NewWriter(w)}
}

// Add writes a file entry. name must be a relative, forward-slash path.
func (z *ZipWriter) Add(name string, content []byte, modTime time.Time) error {
	if z.closed {
		return fmt.Errorf("archive already finalized")
	}
	if err := validateName(name); err != nil {
		return err
	}

	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modTime,
	}
	header.SetMode(0644)

	w, err := z.zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create entry %s; %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write entry %s; %w", name, err)
	}

	z.entries++
	return nil
}

// Entries returns the number of entries written so far.
func (z *ZipWriter) Entries() int {
	return z.entries
}

// Close writes the central directory.
func (z *ZipWriter) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	if err := z.zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive; %w", err)
	}
	return nil
}

// validateName rejects names that would escape the archive root.
func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("entry name is empty")
	case strings.HasPrefix(name, "/"):
		return fmt.Errorf("entry name %q is absolute", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return fmt.Errorf("entry name %q escapes the archive root", name)
		}
	}
	return nil
}
