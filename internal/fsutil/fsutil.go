// Package fsutil holds small filesystem helpers shared by the archiver and the
// updater.
package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// HashFile computes the SHA-256 hash of a file's contents.
func HashFile(fsys afero.Fs, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// HashBytes computes the SHA-256 hash of the provided bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ReplaceFile writes r to a temporary file next to path and renames it over
// path, so readers see either the old or the new content.
func ReplaceFile(fsys afero.Fs, path string, r io.Reader, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s; %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = fsys.Remove(tmpName)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write %s; %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s; %w", tmpName, err)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to chmod %s; %w", tmpName, err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s; %w", path, err)
	}

	return nil
}
