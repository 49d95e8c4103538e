package archiver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/azuyamat/mia/internal/archive"
	"github.com/azuyamat/mia/internal/filetype"
	"github.com/azuyamat/mia/internal/fsutil"
	"github.com/azuyamat/mia/internal/walker"
)

// State is the engine's lifecycle state. An engine only moves forward.
type State int

const (
	StateInit State = iota
	StateWalking
	StateFinalizing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateWalking:
		return "walking"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Observer receives per-entry notifications during a verbose run.
type Observer interface {
	// OnDirectory is called before a kept directory's contents are visited.
	OnDirectory(relPath string)

	// OnFile is called after a file has been written to the archive.
	OnFile(relPath string, lang filetype.Language, lines int, size int64)
}

// Summary is the outcome of a successful run.
type Summary struct {
	ArchivePath       string
	OutputDirFellBack bool
	CreatedOutputDir  bool

	FilesWritten  int
	BytesArchived int64
	ArchiveSize   int64
	Checksum      string // sha256 of the finished archive, hex

	DirsWalked int
	Skipped    int
	Elapsed    time.Duration
	Tally      Tally
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs sets the filesystem the engine reads from and writes to.
func WithFs(fsys afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fsys
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver sets the observer notified of each entry on verbose runs.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithClock sets the time source used for :date and elapsed time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine archives a single Job. It is not safe for concurrent use and runs
// at most once.
type Engine struct {
	job      Job
	fs       afero.Fs
	logger   *slog.Logger
	observer Observer
	now      func() time.Time

	state State
}

// New creates an Engine for job.
func New(job Job, opts ...Option) *Engine {
	e := &Engine{
		job:    job,
		fs:     afero.NewOsFs(),
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State returns the engine's current state.
func (e *Engine) State() State {
	return e.state
}

// Run archives the job's tree.
//
// Root checks happen before the archive file is created. Any failure after
// that leaves the partial archive on disk unfinalized; it is not a valid zip.
// Entry order inside the archive follows filesystem enumeration order.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	if e.state != StateInit {
		return nil, ErrAlreadyRun
	}
	defer func() { e.state = StateDone }()

	start := e.now()

	root, err := filepath.Abs(e.job.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s; %w", e.job.Root, err)
	}
	if err := ValidateRoot(e.fs, root); err != nil {
		return nil, err
	}

	target, err := ResolveArchivePath(e.fs, e.job.Name, e.job.Policy.Naming, root, e.job.OutputDir, start)
	if err != nil {
		return nil, err
	}
	if target.FellBack {
		e.logger.Warn("output directory unusable; writing archive to root",
			"output_dir", e.job.OutputDir,
			"root", root)
	}

	file, err := e.fs.Create(target.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s; %w", ErrArchiveCreateFailed, target.Path, err)
	}
	finalized := false
	defer func() {
		if !finalized {
			file.Close()
		}
	}()

	e.logger.Info("archiving", "root", root, "archive", target.Path)

	zw := archive.NewZipWriter(file)
	summary := &Summary{
		ArchivePath:       target.Path,
		OutputDirFellBack: target.FellBack,
		CreatedOutputDir:  target.CreatedOutputDir,
		Tally:             Tally{},
	}

	e.state = StateWalking
	w := e.newWalker(target.Path)
	err = w.Walk(ctx, root, func(entry walker.Entry) error {
		return e.archiveFile(zw, entry, summary)
	})
	if err != nil {
		var dirErr *walker.DirError
		if errors.As(err, &dirErr) {
			return nil, fmt.Errorf("%w: directory %s; %w", ErrFileReadFailed, dirErr.Path, dirErr.Err)
		}
		return nil, err
	}

	stats := w.Stats()
	summary.DirsWalked = int(stats.DirsTraversed)
	summary.Skipped = int(stats.FilesSkipped + stats.DirsPruned)

	e.state = StateFinalizing
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s; %w", ErrArchiveFinalizeFailed, target.Path, err)
	}
	finalized = true
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s; %w", ErrArchiveFinalizeFailed, target.Path, err)
	}

	if info, err := e.fs.Stat(target.Path); err == nil {
		summary.ArchiveSize = info.Size()
	}
	if sum, err := fsutil.HashFile(e.fs, target.Path); err == nil {
		summary.Checksum = sum
	} else {
		e.logger.Warn("failed to checksum archive", "path", target.Path, "error", err)
	}

	summary.Elapsed = e.now().Sub(start)

	e.logger.Info("archive complete",
		"archive", summary.ArchivePath,
		"files", summary.FilesWritten,
		"bytes", summary.BytesArchived,
		"elapsed", summary.Elapsed)

	return summary, nil
}

func (e *Engine) newWalker(archivePath string) walker.Walker {
	opts := []walker.WalkerOption{
		walker.WithSkipPaths(archivePath),
		walker.WithLogger(e.logger),
	}
	if e.notify() {
		opts = append(opts, walker.WithDirFunc(func(entry walker.Entry) error {
			e.observer.OnDirectory(entry.RelPath)
			return nil
		}))
	}
	return walker.New(e.fs, walker.NewFilter(e.job.Rules()), opts...)
}

// archiveFile reads one kept file, writes it as an entry and tallies its lines.
func (e *Engine) archiveFile(zw archive.Writer, entry walker.Entry, summary *Summary) error {
	content, err := afero.ReadFile(e.fs, entry.Path)
	if err != nil {
		return fmt.Errorf("%w: %s; %w", ErrFileReadFailed, entry.Path, err)
	}

	if err := zw.Add(entry.RelPath, content, entry.Info.ModTime()); err != nil {
		return fmt.Errorf("%w: %s; %w", ErrEntryWriteFailed, entry.RelPath, err)
	}
	summary.FilesWritten++
	summary.BytesArchived += int64(len(content))

	lang := filetype.DetectLanguage(entry.Ext())
	lines, text := filetype.CountLines(content)
	if text {
		summary.Tally.Add(lang, lines)
	}

	e.logger.Debug("archived file", "path", entry.RelPath, "language", lang, "lines", lines)
	if e.notify() {
		e.observer.OnFile(entry.RelPath, lang, lines, int64(len(content)))
	}
	return nil
}

func (e *Engine) notify() bool {
	return e.job.Verbose && e.observer != nil
}
