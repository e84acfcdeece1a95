package persistence

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrInvalidMagic is returned when a container file does not start with
	// the expected magic number.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion is returned for unsupported container format versions.
	ErrInvalidVersion = errors.New("unsupported format version")

	// ErrTruncated is returned when a container file ends before its
	// checksum footer.
	ErrTruncated = errors.New("truncated container file")
)

// SaveToFile writes a file atomically.
//
// The content is written to a temp file in the same directory, synced, and
// renamed over the target so readers never observe partial content.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 64*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// LoadFromFile opens a file and passes a buffered reader to readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewReaderSize(f, 64*1024)
	return readFunc(buf)
}
