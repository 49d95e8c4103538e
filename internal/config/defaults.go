package config

import "github.com/azuyamat/mia/internal/naming"

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFile   = "~/.config/mia/mia.log"
	DefaultOutputDir = ""
	DefaultNaming    = naming.DefaultTemplate
)

// DefaultBlacklistedFileNames is empty; no file is skipped by name by default.
var DefaultBlacklistedFileNames = []string{}

// DefaultBlacklistedFolderNames are VCS, build output and IDE folders.
var DefaultBlacklistedFolderNames = []string{
	".git",
	"bin",
	"obj",
	".idea",
	".vs",
}

// DefaultBlacklistedFileExtensions keeps existing archives and PDFs out of new archives.
var DefaultBlacklistedFileExtensions = []string{
	"zip",
	"pdf",
}

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		LogLevel:  DefaultLogLevel,
		LogFile:   DefaultLogFile,
		OutputDir: DefaultOutputDir,
		FilterPolicy: FilterPolicy{
			Naming:                    DefaultNaming,
			BlacklistedFileNames:      append([]string{}, DefaultBlacklistedFileNames...),
			BlacklistedFolderNames:    append([]string{}, DefaultBlacklistedFolderNames...),
			BlacklistedFileExtensions: append([]string{}, DefaultBlacklistedFileExtensions...),
		},
	}
}
