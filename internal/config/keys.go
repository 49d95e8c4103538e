package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/azuyamat/mia/internal/filetype"
)

var (
	// ErrUnknownKey is returned for keys outside the known key table.
	ErrUnknownKey = errors.New("unknown key")

	// ErrWrongKeyKind is returned when set is used on a list key, or add/remove on a scalar key.
	ErrWrongKeyKind = errors.New("wrong key kind")

	// ErrValueNotFound is returned when removing a value that is not in the list.
	ErrValueNotFound = errors.New("value not found")

	// ErrValueExists is returned when adding a value already in the list.
	ErrValueExists = errors.New("value already present")
)

// KeyKind distinguishes single-valued keys from list keys.
type KeyKind int

const (
	// ScalarKey holds one string and is changed with Set.
	ScalarKey KeyKind = iota
	// ListKey holds a list of names and is changed with Add and Remove.
	ListKey
)

func (k KeyKind) String() string {
	if k == ListKey {
		return "list"
	}
	return "scalar"
}

// Configuration keys accepted by Set, Add and Remove.
const (
	KeyNaming                    = "naming"
	KeyOutputDir                 = "output_dir"
	KeyLogLevel                  = "log_level"
	KeyLogFile                   = "log_file"
	KeyBlacklistedFileNames      = "blacklisted_file_names"
	KeyBlacklistedFolderNames    = "blacklisted_folder_names"
	KeyBlacklistedFileExtensions = "blacklisted_file_extensions"
)

type keySpec struct {
	name      string
	kind      KeyKind
	scalar    func(c *Config) *string
	list      func(c *Config) *[]string
	normalize func(string) string
}

// keyTable lists the mutable keys in display order.
var keyTable = []keySpec{
	{name: KeyNaming, kind: ScalarKey, scalar: func(c *Config) *string { return &c.Naming }},
	{name: KeyOutputDir, kind: ScalarKey, scalar: func(c *Config) *string { return &c.OutputDir }},
	{name: KeyLogLevel, kind: ScalarKey, scalar: func(c *Config) *string { return &c.LogLevel }, normalize: strings.ToLower},
	{name: KeyLogFile, kind: ScalarKey, scalar: func(c *Config) *string { return &c.LogFile }},
	{name: KeyBlacklistedFileNames, kind: ListKey, list: func(c *Config) *[]string { return &c.BlacklistedFileNames }},
	{name: KeyBlacklistedFolderNames, kind: ListKey, list: func(c *Config) *[]string { return &c.BlacklistedFolderNames }},
	{name: KeyBlacklistedFileExtensions, kind: ListKey, list: func(c *Config) *[]string { return &c.BlacklistedFileExtensions }, normalize: filetype.NormalizeExt},
}

// Keys returns the names of all mutable keys in display order.
func Keys() []string {
	names := make([]string, len(keyTable))
	for i, spec := range keyTable {
		names[i] = spec.name
	}
	return names
}

// lookupKey finds a key case-insensitively.
func lookupKey(key string) (keySpec, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, spec := range keyTable {
		if spec.name == key {
			return spec, nil
		}
	}
	return keySpec{}, fmt.Errorf("%w %q; valid keys: %s", ErrUnknownKey, key, strings.Join(Keys(), ", "))
}

// KeyKindOf reports whether key is a scalar or a list key.
func KeyKindOf(key string) (KeyKind, error) {
	spec, err := lookupKey(key)
	if err != nil {
		return 0, err
	}
	return spec.kind, nil
}

func (s keySpec) apply(value string) string {
	value = strings.TrimSpace(value)
	if s.normalize != nil {
		value = s.normalize(value)
	}
	return value
}

// Set assigns value to a scalar key.
func (c *Config) Set(key, value string) error {
	spec, err := lookupKey(key)
	if err != nil {
		return err
	}
	if spec.kind != ScalarKey {
		return fmt.Errorf("%w: %s is a list; use add or remove", ErrWrongKeyKind, spec.name)
	}
	*spec.scalar(c) = spec.apply(value)
	return nil
}

// Add appends value to a list key.
func (c *Config) Add(key, value string) error {
	spec, err := lookupKey(key)
	if err != nil {
		return err
	}
	if spec.kind != ListKey {
		return fmt.Errorf("%w: %s is not a list; use set", ErrWrongKeyKind, spec.name)
	}

	value = spec.apply(value)
	list := spec.list(c)
	if slices.Contains(*list, value) {
		return fmt.Errorf("%w: %q in %s", ErrValueExists, value, spec.name)
	}
	*list = append(*list, value)
	return nil
}

// Remove deletes value from a list key.
func (c *Config) Remove(key, value string) error {
	spec, err := lookupKey(key)
	if err != nil {
		return err
	}
	if spec.kind != ListKey {
		return fmt.Errorf("%w: %s is not a list; use set", ErrWrongKeyKind, spec.name)
	}

	value = spec.apply(value)
	list := spec.list(c)
	idx := slices.Index(*list, value)
	if idx < 0 {
		return fmt.Errorf("%w: %q in %s", ErrValueNotFound, value, spec.name)
	}
	*list = slices.Delete(*list, idx, idx+1)
	return nil
}

// Entry is a key and its current value(s).
type Entry struct {
	Key    string
	Kind   KeyKind
	Value  string
	Values []string
}

// Entries returns every mutable key with its current value, in display order.
func (c *Config) Entries() []Entry {
	entries := make([]Entry, 0, len(keyTable))
	for _, spec := range keyTable {
		e := Entry{Key: spec.name, Kind: spec.kind}
		if spec.kind == ScalarKey {
			e.Value = *spec.scalar(c)
		} else {
			e.Values = append([]string{}, *spec.list(c)...)
		}
		entries = append(entries, e)
	}
	return entries
}
