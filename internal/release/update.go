package release

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"

	"github.com/azuyamat/mia/internal/fsutil"
)

// AssetName returns the release asset name for a platform, e.g.
// "mia-linux-amd64" or "mia-windows-amd64.exe".
func AssetName(goos, goarch string) string {
	name := fmt.Sprintf("mia-%s-%s", goos, goarch)
	if goos == "windows" {
		name += ".exe"
	}
	return name
}

// IsNewer reports whether latest is a higher version than current.
func IsNewer(current, latest string) (bool, error) {
	cur, err := version.NewVersion(current)
	if err != nil {
		return false, fmt.Errorf("invalid current version %q; %w", current, err)
	}
	lat, err := version.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("invalid release version %q; %w", latest, err)
	}
	return lat.GreaterThan(cur), nil
}

// Check is the result of comparing the running version to the latest release.
type Check struct {
	Current   string
	Latest    *Release
	Available bool
}

// Updater replaces an executable with the build from a release.
type Updater struct {
	source Source
	fs     afero.Fs
	logger *slog.Logger
	asset  string
}

// UpdaterOption configures the Updater.
type UpdaterOption func(*Updater)

// WithFs sets the filesystem the executable is replaced on.
func WithFs(fsys afero.Fs) UpdaterOption {
	return func(u *Updater) {
		u.fs = fsys
	}
}

// WithAssetName overrides the platform asset name.
func WithAssetName(name string) UpdaterOption {
	return func(u *Updater) {
		u.asset = name
	}
}

// WithUpdaterLogger sets the updater's logger.
func WithUpdaterLogger(logger *slog.Logger) UpdaterOption {
	return func(u *Updater) {
		u.logger = logger
	}
}

// NewUpdater creates an Updater pulling releases from source.
func NewUpdater(source Source, opts ...UpdaterOption) *Updater {
	u := &Updater{
		source: source,
		fs:     afero.NewOsFs(),
		logger: slog.Default(),
		asset:  AssetName(runtime.GOOS, runtime.GOARCH),
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

// Check fetches the latest release and compares it with current.
func (u *Updater) Check(ctx context.Context, current string) (*Check, error) {
	rel, err := u.source.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	newer, err := IsNewer(current, rel.TagName)
	if err != nil {
		return nil, err
	}

	return &Check{Current: current, Latest: rel, Available: newer}, nil
}

// Apply downloads the platform asset of rel and atomically replaces the file
// at exePath with it. The existing file is untouched when the download fails.
func (u *Updater) Apply(ctx context.Context, rel *Release, exePath string) error {
	asset, err := rel.FindAsset(u.asset)
	if err != nil {
		return err
	}

	u.logger.Info("downloading release asset", "tag", rel.TagName, "asset", asset.Name)

	var buf bytes.Buffer
	if err := u.source.DownloadAsset(ctx, asset.DownloadURL, &buf); err != nil {
		return fmt.Errorf("failed to download %s; %w", asset.Name, err)
	}

	if err := fsutil.ReplaceFile(u.fs, exePath, &buf, 0755); err != nil {
		return fmt.Errorf("failed to install %s; %w", asset.Name, err)
	}

	u.logger.Info("executable replaced", "path", exePath, "tag", rel.TagName)
	return nil
}
