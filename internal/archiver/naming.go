package archiver

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/azuyamat/mia/internal/archive"
	"github.com/azuyamat/mia/internal/naming"
)

// DefaultArchiveName is the base name used when none is declared.
const DefaultArchiveName = "mia_zip"

// Target is a resolved archive location.
type Target struct {
	// Path is the archive file path.
	Path string

	// Dir is the directory holding the archive.
	Dir string

	// FellBack is true when the requested output directory was unusable and
	// the archive is written to the root instead.
	FellBack bool

	// CreatedOutputDir is true when the output directory did not exist and
	// was created.
	CreatedOutputDir bool
}

// ValidateRoot checks that root exists and is a directory.
func ValidateRoot(fsys afero.Fs, root string) error {
	info, err := fsys.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return fmt.Errorf("failed to stat %s; %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrPathNotDirectory, root)
	}
	return nil
}

// ResolveArchivePath renders the archive name from template and picks the
// output directory.
//
// The base name is declared, or DefaultArchiveName when declared is empty.
// A relative outputDir is resolved against the working directory, so
// Target.Path is absolute whenever root is. An outputDir that cannot be created, or is not a directory after creation,
// falls back to root; Target.FellBack reports it.
func ResolveArchivePath(fsys afero.Fs, declared, template, root, outputDir string, now time.Time) (Target, error) {
	base := strings.TrimSpace(declared)
	if base == "" {
		base = DefaultArchiveName
	}

	name, err := naming.Render(template, base, now)
	if err != nil {
		return Target{}, err
	}
	if !strings.EqualFold(filepath.Ext(name), archive.Extension) {
		name += archive.Extension
	}

	target := Target{Dir: root}
	if outputDir != "" {
		dir, created, ok := ensureDir(fsys, outputDir)
		if ok {
			target.Dir = dir
			target.CreatedOutputDir = created
		} else {
			target.FellBack = true
		}
	}

	target.Path = filepath.Join(target.Dir, name)
	return target, nil
}

// ensureDir creates dir when missing and returns it as an absolute path.
// A relative dir is taken from the working directory. ok is false when dir is
// not usable.
func ensureDir(fsys afero.Fs, dir string) (path string, created, ok bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, false
	}
	_, statErr := fsys.Stat(dir)
	existed := statErr == nil

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return "", false, false
	}

	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false, false
	}

	return dir, !existed, true
}
