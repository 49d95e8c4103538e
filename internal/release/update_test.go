package release

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves a fixed release and asset payload.
type fakeSource struct {
	release     *Release
	payload     string
	err         error
	downloadErr error
	downloaded  []string
}

func (f *fakeSource) LatestRelease(ctx context.Context) (*Release, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.release, nil
}

func (f *fakeSource) DownloadAsset(ctx context.Context, url string, dst io.Writer) error {
	f.downloaded = append(f.downloaded, url)
	if f.downloadErr != nil {
		return f.downloadErr
	}
	_, err := io.WriteString(dst, f.payload)
	return err
}

func TestAssetName(t *testing.T) {
	assert.Equal(t, "mia-linux-amd64", AssetName("linux", "amd64"))
	assert.Equal(t, "mia-darwin-arm64", AssetName("darwin", "arm64"))
	assert.Equal(t, "mia-windows-amd64.exe", AssetName("windows", "amd64"))
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"0.1.0", "v0.2.0", true},
		{"0.2.0", "v0.2.0", false},
		{"1.0.0", "0.9.9", false},
		{"1.0.0-rc.1", "1.0.0", true},
		{"1.9.0", "1.10.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.current+"->"+tt.latest, func(t *testing.T) {
			got, err := IsNewer(tt.current, tt.latest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := IsNewer("dev", "1.0.0")
	assert.Error(t, err)
}

func TestUpdater_Check(t *testing.T) {
	src := &fakeSource{release: &Release{TagName: "v0.3.0"}}
	u := NewUpdater(src)

	check, err := u.Check(context.Background(), "0.1.0")
	require.NoError(t, err)
	assert.True(t, check.Available)
	assert.Equal(t, "v0.3.0", check.Latest.TagName)

	check, err = u.Check(context.Background(), "0.3.0")
	require.NoError(t, err)
	assert.False(t, check.Available)
}

func TestUpdater_CheckSourceError(t *testing.T) {
	u := NewUpdater(&fakeSource{err: ErrReleaseNotFound})

	_, err := u.Check(context.Background(), "0.1.0")
	assert.ErrorIs(t, err, ErrReleaseNotFound)
}

func TestUpdater_Apply(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/usr/local/bin/mia", []byte("old build"), 0755))

	src := &fakeSource{payload: "new build"}
	rel := &Release{TagName: "v0.3.0", Assets: []Asset{
		{Name: "mia-linux-amd64", DownloadURL: "https://example/linux"},
		{Name: "mia-windows-amd64.exe", DownloadURL: "https://example/windows"},
	}}

	u := NewUpdater(src, WithFs(fsys), WithAssetName("mia-linux-amd64"))
	require.NoError(t, u.Apply(context.Background(), rel, "/usr/local/bin/mia"))

	got, err := afero.ReadFile(fsys, "/usr/local/bin/mia")
	require.NoError(t, err)
	assert.Equal(t, "new build", string(got))
	assert.Equal(t, []string{"https://example/linux"}, src.downloaded)
}

func TestUpdater_ApplyFailureKeepsExecutable(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/bin/mia", []byte("old build"), 0755))

	rel := &Release{TagName: "v0.3.0", Assets: []Asset{{Name: "mia-linux-amd64", DownloadURL: "u"}}}

	t.Run("missing asset", func(t *testing.T) {
		u := NewUpdater(&fakeSource{}, WithFs(fsys), WithAssetName("mia-plan9-386"))
		err := u.Apply(context.Background(), rel, "/bin/mia")
		assert.ErrorIs(t, err, ErrAssetNotFound)
	})

	t.Run("download error", func(t *testing.T) {
		boom := errors.New("connection reset")
		u := NewUpdater(&fakeSource{downloadErr: boom}, WithFs(fsys), WithAssetName("mia-linux-amd64"))
		err := u.Apply(context.Background(), rel, "/bin/mia")
		assert.ErrorIs(t, err, boom)
	})

	got, err := afero.ReadFile(fsys, "/bin/mia")
	require.NoError(t, err)
	assert.Equal(t, "old build", string(got))
}
