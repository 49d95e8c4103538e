package walker

import (
	"path/filepath"
	"strings"

	"github.com/azuyamat/mia/internal/filetype"
)

// Rules holds the name lists a Filter decides with.
// Include and Exclude are per-invocation overrides; the remaining lists are
// the configured blacklist.
type Rules struct {
	Include     []string
	Exclude     []string
	FileNames   []string
	FolderNames []string
	Extensions  []string
}

// Filter determines whether files and directories should be skipped.
//
// Precedence: include, then exclude, then the blacklist. A name in Include is
// kept even when it is also excluded or blacklisted, and an included directory
// is still descended into.
type Filter struct {
	include     patternSet
	exclude     patternSet
	fileNames   patternSet
	folderNames patternSet
	extensions  patternSet
}

// NewFilter creates a Filter from rules. All matching is case-insensitive.
func NewFilter(rules Rules) *Filter {
	return &Filter{
		include:     newPatternSet(rules.Include, false),
		exclude:     newPatternSet(rules.Exclude, false),
		fileNames:   newPatternSet(rules.FileNames, false),
		folderNames: newPatternSet(rules.FolderNames, false),
		extensions:  newPatternSet(rules.Extensions, true),
	}
}

// ShouldSkip reports whether the entry should be left out of the archive.
// name is the entry's base name, ext its extension with or without the dot.
// For files, name lists match either the full name or the stem.
func (f *Filter) ShouldSkip(name, ext string, isDir bool) bool {
	name = strings.ToLower(name)
	ext = filetype.NormalizeExt(ext)

	stem := name
	if !isDir && ext != "" {
		stem = strings.TrimSuffix(name, "."+ext)
	}

	// Include overrides everything else
	if f.include.matches(name, stem) {
		return false
	}
	if !isDir && ext != "" && f.include.matches(ext) {
		return false
	}

	if f.exclude.matches(name, stem) {
		return true
	}

	if isDir {
		return f.folderNames.matches(name)
	}

	if f.fileNames.matches(name, stem) {
		return true
	}
	return ext != "" && f.extensions.matches(ext)
}

// ShouldSkipPath is ShouldSkip with name and extension taken from path.
func (f *Filter) ShouldSkipPath(path string, isDir bool) bool {
	name := filepath.Base(path)
	ext := ""
	if !isDir {
		ext = filetype.Ext(name)
	}
	return f.ShouldSkip(name, ext, isDir)
}

// patternSet holds exact names plus glob patterns.
type patternSet struct {
	exact map[string]struct{}
	globs []string
}

func newPatternSet(values []string, extensions bool) patternSet {
	ps := patternSet{exact: make(map[string]struct{}, len(values))}
	for _, v := range values {
		v = strings.TrimSpace(strings.ToLower(v))
		if extensions {
			v = strings.TrimPrefix(v, ".")
		}
		if v == "" {
			continue
		}
		if strings.Contains(v, "*") {
			ps.globs = append(ps.globs, v)
			continue
		}
		ps.exact[v] = struct{}{}
	}
	return ps
}

// matches reports whether any candidate matches an exact name or glob.
func (ps patternSet) matches(candidates ...string) bool {
	for _, c := range candidates {
		if _, ok := ps.exact[c]; ok {
			return true
		}
		for _, pattern := range ps.globs {
			if matched, err := filepath.Match(pattern, c); err == nil && matched {
				return true
			}
		}
	}
	return false
}
