package walker

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/azuyamat/mia/internal/filetype"
)

// Entry is a file or directory reached by a walk.
type Entry struct {
	// Path is the entry's path on the walked filesystem.
	Path string

	// RelPath is the path relative to the walk root, using forward slashes.
	RelPath string

	// Info is the entry's (non-followed) file info.
	Info fs.FileInfo
}

// Ext returns the entry's normalized extension, or "" for directories.
func (e Entry) Ext() string {
	if e.Info.IsDir() {
		return ""
	}
	return filetype.Ext(e.Info.Name())
}

// VisitFunc is called for every kept entry. A non-nil error stops the walk and
// is returned from Walk unchanged.
type VisitFunc func(entry Entry) error

// DirError reports a directory whose listing could not be read.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("failed to read directory %s; %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// Walker traverses a directory tree, pruning directories its filter skips.
type Walker interface {
	// Walk descends depth-first from root, calling fn for each kept file.
	// Entry order follows the filesystem listing and is not guaranteed.
	Walk(ctx context.Context, root string, fn VisitFunc) error

	// Stats returns counters for the last walk.
	Stats() WalkerStats
}

// WalkerStats contains statistics about a walk.
type WalkerStats struct {
	FilesVisited    int64
	FilesSkipped    int64
	DirsTraversed   int64
	DirsPruned      int64
	SymlinksSkipped int64
	IrregularFiles  int64
}

// WalkerOption configures the Walker.
type WalkerOption func(*walker)

// WithDirFunc sets a callback invoked for every directory that is descended
// into, before its contents are visited.
func WithDirFunc(fn VisitFunc) WalkerOption {
	return func(w *walker) {
		w.dirFn = fn
	}
}

// WithSkipPaths excludes exact paths from the walk regardless of the filter.
func WithSkipPaths(paths ...string) WalkerOption {
	return func(w *walker) {
		for _, p := range paths {
			w.skipPaths[filepath.Clean(p)] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for per-entry debug output.
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *walker) {
		w.logger = logger
	}
}

// walker implements the Walker interface.
type walker struct {
	fs     afero.Fs
	filter *Filter
	logger *slog.Logger

	dirFn     VisitFunc
	skipPaths map[string]struct{}

	stats WalkerStats
}

// New creates a new Walker over fsys using filter.
func New(fsys afero.Fs, filter *Filter, opts ...WalkerOption) Walker {
	if filter == nil {
		filter = NewFilter(Rules{})
	}

	w := &walker{
		fs:        fsys,
		filter:    filter,
		logger:    slog.Default(),
		skipPaths: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk descends depth-first from root, calling fn for each kept file.
func (w *walker) Walk(ctx context.Context, root string, fn VisitFunc) error {
	w.stats = WalkerStats{}
	root = filepath.Clean(root)
	return w.walkDir(ctx, root, root, fn)
}

// Stats returns counters for the last walk.
func (w *walker) Stats() WalkerStats {
	return w.stats
}

// walkDir visits the contents of dir. Skipped directories are never listed.
func (w *walker) walkDir(ctx context.Context, root, dir string, fn VisitFunc) error {
	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return &DirError{Path: dir, Err: err}
	}

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, info.Name())
		if _, skip := w.skipPaths[path]; skip {
			continue
		}

		// Symlinks are not followed
		if info.Mode()&fs.ModeSymlink != 0 {
			w.stats.SymlinksSkipped++
			w.logger.Debug("skipping symlink", "path", path)
			continue
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s; %w", path, err)
		}
		entry := Entry{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Info:    info,
		}

		if info.IsDir() {
			if w.filter.ShouldSkip(info.Name(), "", true) {
				w.stats.DirsPruned++
				w.logger.Debug("pruning directory", "path", entry.RelPath)
				continue
			}

			w.stats.DirsTraversed++
			if w.dirFn != nil {
				if err := w.dirFn(entry); err != nil {
					return err
				}
			}
			if err := w.walkDir(ctx, root, path, fn); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			w.stats.IrregularFiles++
			w.logger.Debug("skipping irregular file", "path", entry.RelPath, "mode", info.Mode().String())
			continue
		}

		if w.filter.ShouldSkip(info.Name(), entry.Ext(), false) {
			w.stats.FilesSkipped++
			w.logger.Debug("skipping file", "path", entry.RelPath)
			continue
		}

		w.stats.FilesVisited++
		if err := fn(entry); err != nil {
			return err
		}
	}

	return nil
}
