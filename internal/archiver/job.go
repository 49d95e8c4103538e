// Package archiver builds a zip archive from a directory tree, applying the
// filter policy and tallying non-blank lines per language.
package archiver

import (
	"github.com/azuyamat/mia/internal/config"
	"github.com/azuyamat/mia/internal/walker"
)

// Job describes a single archive run. A Job is not modified by the engine.
type Job struct {
	// Root is the directory to archive.
	Root string

	// Name is the declared base name; empty means DefaultArchiveName.
	Name string

	// Exclude and Include are per-run overrides of the policy's blacklist.
	// Include wins over Exclude and the blacklist.
	Exclude []string
	Include []string

	// Policy supplies the naming template and the blacklist.
	Policy config.FilterPolicy

	// OutputDir is where the archive is written; empty means Root.
	OutputDir string

	// Verbose enables per-entry observer notifications.
	Verbose bool
}

// Rules returns the filter rules for the job.
func (j Job) Rules() walker.Rules {
	return walker.Rules{
		Include:     j.Include,
		Exclude:     j.Exclude,
		FileNames:   j.Policy.BlacklistedFileNames,
		FolderNames: j.Policy.BlacklistedFolderNames,
		Extensions:  j.Policy.BlacklistedFileExtensions,
	}
}
