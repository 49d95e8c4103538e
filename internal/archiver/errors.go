package archiver

import (
	"errors"

	"github.com/azuyamat/mia/internal/naming"
)

var (
	// ErrPathNotFound is returned when the root does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrPathNotDirectory is returned when the root exists but is not a directory.
	ErrPathNotDirectory = errors.New("path is not a directory")

	// ErrArchiveCreateFailed is returned when the archive file cannot be created.
	ErrArchiveCreateFailed = errors.New("failed to create archive")

	// ErrArchiveFinalizeFailed is returned when flushing or closing the archive fails.
	ErrArchiveFinalizeFailed = errors.New("failed to finalize archive")

	// ErrFileReadFailed is returned when a file or directory in the tree cannot be read.
	ErrFileReadFailed = errors.New("failed to read file")

	// ErrEntryWriteFailed is returned when the archive rejects an entry.
	ErrEntryWriteFailed = errors.New("failed to write archive entry")

	// ErrAlreadyRun is returned by Run on an engine that has already run.
	ErrAlreadyRun = errors.New("engine has already run")

	// ErrInvalidArchiveName is returned when the rendered archive name is unusable.
	ErrInvalidArchiveName = naming.ErrInvalidName

	// ErrUnresolvedPlaceholder is returned for naming templates with unknown placeholders.
	ErrUnresolvedPlaceholder = naming.ErrUnresolvedPlaceholder
)
