// Package testutil provides testing utilities for isolated test environments.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/azuyamat/mia/internal/config"
)

// TestEnv provides an isolated test environment with its own config directory.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
}

// NewTestEnv creates an isolated test environment.
// The config directory and log file are redirected through MIA_* environment
// variables, so config.Load never sees the user's real configuration.
// Cleanup is automatic via t.Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	configDir := filepath.Join(t.TempDir(), "config")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("failed to create test config dir: %v", err)
	}

	// These env vars override viper settings via AutomaticEnv()
	t.Setenv(config.ConfigDirEnv, configDir)
	t.Setenv(config.EnvPrefix+"_LOG_FILE", filepath.Join(configDir, "mia.log"))

	return &TestEnv{
		t:         t,
		ConfigDir: configDir,
	}
}

// ConfigPath returns the path the config file is read from and written to.
func (e *TestEnv) ConfigPath() string {
	return filepath.Join(e.ConfigDir, config.ConfigFileName)
}

// WriteConfig writes raw YAML to the config file.
func (e *TestEnv) WriteConfig(content string) string {
	e.t.Helper()

	path := e.ConfigPath()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		e.t.Fatalf("failed to write config %s: %v", path, err)
	}
	return path
}

// CreateTestDir creates a test directory within the test environment's temp space.
// Returns the absolute path to the created directory.
func (e *TestEnv) CreateTestDir(name string) string {
	e.t.Helper()

	// Use a separate temp dir for test data (not inside config dir)
	testDataDir := filepath.Join(e.t.TempDir(), "testdata", name)
	if err := os.MkdirAll(testDataDir, 0755); err != nil {
		e.t.Fatalf("failed to create test dir %s: %v", name, err)
	}
	return testDataDir
}

// CreateTestFile creates a test file with the given content, creating parent
// directories as needed. name may contain slashes.
// Returns the absolute path to the created file.
func (e *TestEnv) CreateTestFile(dir, name, content string) string {
	e.t.Helper()

	filePath := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		e.t.Fatalf("failed to create parent of %s: %v", filePath, err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to create test file %s: %v", filePath, err)
	}
	return filePath
}

// CreateTestTree creates a directory called name holding files, keyed by
// slash-separated relative path. Returns the directory's absolute path.
func (e *TestEnv) CreateTestTree(name string, files map[string]string) string {
	e.t.Helper()

	dir := e.CreateTestDir(name)
	for rel, content := range files {
		e.CreateTestFile(dir, rel, content)
	}
	return dir
}
