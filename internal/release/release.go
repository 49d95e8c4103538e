// Package release looks up published releases on GitHub and replaces the
// running executable with a newer build.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-version"
)

const (
	DefaultAPIURL = "https://api.github.com"
	DefaultOwner  = "Azuyamat"
	DefaultRepo   = "mia"

	userAgent      = "mia_cli"
	requestTimeout = 60 * time.Second
)

var (
	// ErrReleaseNotFound is returned when the repository has no matching release.
	ErrReleaseNotFound = errors.New("release not found")

	// ErrAssetNotFound is returned when a release has no asset for this platform.
	ErrAssetNotFound = errors.New("asset not found")
)

// RateLimitError is returned when the GitHub API rate limit is exhausted.
type RateLimitError struct {
	Reset time.Time
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return "github api rate limit exceeded"
	}
	return fmt.Sprintf("github api rate limit exceeded; resets at %s", e.Reset.Format(time.RFC3339))
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name          string `json:"name"`
	DownloadURL   string `json:"browser_download_url"`
	DownloadCount int    `json:"download_count"`
	Size          int64  `json:"size"`
}

// Release is a published GitHub release.
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name"`
	Body    string  `json:"body"`
	Assets  []Asset `json:"assets"`
}

// Version parses the release tag as a semantic version. A leading "v" is allowed.
func (r *Release) Version() (*version.Version, error) {
	v, err := version.NewVersion(r.TagName)
	if err != nil {
		return nil, fmt.Errorf("invalid release tag %q; %w", r.TagName, err)
	}
	return v, nil
}

// FindAsset returns the asset called name.
func (r *Release) FindAsset(name string) (Asset, error) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: %s in release %s", ErrAssetNotFound, name, r.TagName)
}

// Source is where updates come from.
type Source interface {
	// LatestRelease returns the newest published release.
	LatestRelease(ctx context.Context) (*Release, error)

	// DownloadAsset streams the file at url into dst.
	DownloadAsset(ctx context.Context, url string, dst io.Writer) error
}

// Client is a Source backed by the GitHub Releases API.
type Client struct {
	baseURL    string
	owner      string
	repo       string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Source = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithRepository sets the repository releases are read from.
func WithRepository(owner, repo string) ClientOption {
	return func(c *Client) {
		c.owner = owner
		c.repo = repo
	}
}

// WithHTTPClient sets the HTTP client to use.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the client's logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a GitHub releases client.
func NewClient(opts ...ClientOption) *Client {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = requestTimeout

	c := &Client{
		baseURL:    DefaultAPIURL,
		owner:      DefaultOwner,
		repo:       DefaultRepo,
		httpClient: httpClient,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LatestRelease returns the newest published release.
func (c *Client) LatestRelease(ctx context.Context) (*Release, error) {
	return c.getRelease(ctx, fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo))
}

// ReleaseByTag returns the release tagged tag.
func (c *Client) ReleaseByTag(ctx context.Context, tag string) (*Release, error) {
	return c.getRelease(ctx, fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, c.owner, c.repo, tag))
}

// LatestVersion returns the tag of the newest published release.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	rel, err := c.LatestRelease(ctx)
	if err != nil {
		return "", err
	}
	return rel.TagName, nil
}

// DownloadAsset streams the file at url into dst.
func (c *Client) DownloadAsset(ctx context.Context, url string, dst io.Writer) error {
	req, err := c.newRequest(ctx, url, "application/octet-stream")
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download request failed; %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed with status %s", url, resp.Status)
	}

	written, err := io.Copy(dst, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read download; %w", err)
	}
	if resp.ContentLength >= 0 && written != resp.ContentLength {
		return fmt.Errorf("incorrect download size: expected %d bytes, got %d", resp.ContentLength, written)
	}

	c.logger.Debug("asset downloaded", "url", url, "bytes", written)
	return nil
}

func (c *Client) getRelease(ctx context.Context, url string) (*Release, error) {
	req, err := c.newRequest(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("release request failed; %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response; %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s/%s", ErrReleaseNotFound, c.owner, c.repo)
	case isRateLimited(resp):
		return nil, &RateLimitError{Reset: rateLimitReset(resp)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("failed to parse response; %w", err)
	}

	c.logger.Debug("release fetched", "tag", rel.TagName, "assets", len(rel.Assets))
	return &rel, nil
}

func (c *Client) newRequest(ctx context.Context, url, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request; %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	return req, nil
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0"
}

func rateLimitReset(resp *http.Response) time.Time {
	secs, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}
