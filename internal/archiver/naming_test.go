package archiver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/proj", 0755))
	require.NoError(t, afero.WriteFile(fsys, "/file", []byte("x"), 0644))

	assert.NoError(t, ValidateRoot(fsys, "/proj"))
	assert.ErrorIs(t, ValidateRoot(fsys, "/missing"), ErrPathNotFound)
	assert.ErrorIs(t, ValidateRoot(fsys, "/file"), ErrPathNotDirectory)
}

func TestResolveArchivePath(t *testing.T) {
	date := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		declared string
		template string
		want     string
	}{
		{"default name", "", ":name", "/proj/mia_zip.zip"},
		{"declared name", "proj", ":name", "/proj/proj.zip"},
		{"empty template", "proj", "", "/proj/proj.zip"},
		{"name and date", "proj", ":name_:date", "/proj/proj_2024-03-02.zip"},
		{"date first", "proj", ":date-:name", "/proj/2024-03-02-proj.zip"},
		{"literal template", "proj", "backup", "/proj/backup.zip"},
		{"declared with extension", "proj.zip", ":name", "/proj/proj.zip"},
		{"declared with mixed-case extension", "proj.ZIP", ":name", "/proj/proj.ZIP"},
		{"declared trimmed", "  proj  ", ":name", "/proj/proj.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, fsys.MkdirAll("/proj", 0755))

			target, err := ResolveArchivePath(fsys, tt.declared, tt.template, "/proj", "", date)
			require.NoError(t, err)

			assert.Equal(t, tt.want, target.Path)
			assert.Equal(t, "/proj", target.Dir)
			assert.False(t, target.FellBack)
		})
	}
}

func TestResolveArchivePath_Errors(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		template string
		wantErr  error
	}{
		{"unknown placeholder", "proj", ":name_:time", ErrUnresolvedPlaceholder},
		{"separator in template", "proj", "out/:name", ErrInvalidArchiveName},
		{"separator in declared", "../escape", ":name", ErrInvalidArchiveName},
		{"dot name", ".", ":name", ErrInvalidArchiveName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveArchivePath(afero.NewMemMapFs(), tt.declared, tt.template, "/proj", "", time.Now())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveArchivePath_OutputDir(t *testing.T) {
	now := time.Now()

	t.Run("existing directory", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, fsys.MkdirAll("/out", 0755))

		target, err := ResolveArchivePath(fsys, "p", ":name", "/proj", "/out", now)
		require.NoError(t, err)

		assert.Equal(t, "/out/p.zip", target.Path)
		assert.False(t, target.CreatedOutputDir)
		assert.False(t, target.FellBack)
	})

	t.Run("created directory", func(t *testing.T) {
		fsys := afero.NewMemMapFs()

		target, err := ResolveArchivePath(fsys, "p", ":name", "/proj", "/out/nested/", now)
		require.NoError(t, err)

		assert.Equal(t, "/out/nested/p.zip", target.Path)
		assert.True(t, target.CreatedOutputDir)
		isDir, err := afero.IsDir(fsys, "/out/nested")
		require.NoError(t, err)
		assert.True(t, isDir)
	})

	t.Run("relative directory is made absolute", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		cwd, err := os.Getwd()
		require.NoError(t, err)

		target, err := ResolveArchivePath(fsys, "p", ":name", "/proj", "out", now)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(cwd, "out", "p.zip"), target.Path)
		assert.Equal(t, filepath.Join(cwd, "out"), target.Dir)
		assert.True(t, target.CreatedOutputDir)
	})

	t.Run("mkdir failure falls back to root", func(t *testing.T) {
		fsys := &failMkdirFs{Fs: afero.NewMemMapFs()}

		target, err := ResolveArchivePath(fsys, "p", ":name", "/proj", "/unwritable", now)
		require.NoError(t, err)

		assert.Equal(t, "/proj/p.zip", target.Path)
		assert.Equal(t, "/proj", target.Dir)
		assert.True(t, target.FellBack)
		assert.False(t, target.CreatedOutputDir)
	})

	t.Run("file in the way falls back to root", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/out", []byte("x"), 0644))

		target, err := ResolveArchivePath(fsys, "p", ":name", "/proj", "/out", now)
		require.NoError(t, err)

		assert.Equal(t, "/proj/p.zip", target.Path)
		assert.True(t, target.FellBack)
	})
}

// failMkdirFs rejects every directory creation.
type failMkdirFs struct {
	afero.Fs
}

func (f *failMkdirFs) MkdirAll(path string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: path, Err: errors.New("read-only volume")}
}
