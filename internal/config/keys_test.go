package config

import (
	"errors"
	"slices"
	"testing"
)

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		get   func(*Config) string
		want  string
	}{
		{KeyNaming, ":name_:date", func(c *Config) string { return c.Naming }, ":name_:date"},
		{"OUTPUT_DIR", " /tmp/out ", func(c *Config) string { return c.OutputDir }, "/tmp/out"},
		{KeyLogLevel, "WARN", func(c *Config) string { return c.LogLevel }, "warn"},
		{KeyLogFile, "/var/log/mia.log", func(c *Config) string { return c.LogFile }, "/var/log/mia.log"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := NewDefaultConfig()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if got := tt.get(&cfg); got != tt.want {
				t.Errorf("after Set(%q, %q) value = %q, want %q", tt.key, tt.value, got, tt.want)
			}
		})
	}
}

func TestConfig_Set_Errors(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := cfg.Set("compression", "9"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownKey", err)
	}
	if err := cfg.Set(KeyBlacklistedFolderNames, "dist"); !errors.Is(err, ErrWrongKeyKind) {
		t.Errorf("Set(list key) error = %v, want ErrWrongKeyKind", err)
	}
}

func TestConfig_AddRemove(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := cfg.Add(KeyBlacklistedFolderNames, "node_modules"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !slices.Contains(cfg.BlacklistedFolderNames, "node_modules") {
		t.Errorf("BlacklistedFolderNames = %v, want node_modules added", cfg.BlacklistedFolderNames)
	}

	if err := cfg.Add(KeyBlacklistedFolderNames, "node_modules"); !errors.Is(err, ErrValueExists) {
		t.Errorf("Add(duplicate) error = %v, want ErrValueExists", err)
	}

	if err := cfg.Remove(KeyBlacklistedFolderNames, "bin"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if slices.Contains(cfg.BlacklistedFolderNames, "bin") {
		t.Errorf("BlacklistedFolderNames = %v, want bin removed", cfg.BlacklistedFolderNames)
	}

	if err := cfg.Remove(KeyBlacklistedFolderNames, "bin"); !errors.Is(err, ErrValueNotFound) {
		t.Errorf("Remove(missing) error = %v, want ErrValueNotFound", err)
	}
}

func TestConfig_Add_NormalizesExtensions(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := cfg.Add(KeyBlacklistedFileExtensions, ".EXE"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !slices.Contains(cfg.BlacklistedFileExtensions, "exe") {
		t.Errorf("BlacklistedFileExtensions = %v, want exe", cfg.BlacklistedFileExtensions)
	}

	if err := cfg.Remove(KeyBlacklistedFileExtensions, ".Zip"); err != nil {
		t.Errorf("Remove(.Zip) error = %v", err)
	}
}

func TestConfig_AddRemove_ScalarKeyRejected(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := cfg.Add(KeyNaming, "x"); !errors.Is(err, ErrWrongKeyKind) {
		t.Errorf("Add(scalar) error = %v, want ErrWrongKeyKind", err)
	}
	if err := cfg.Remove(KeyOutputDir, "x"); !errors.Is(err, ErrWrongKeyKind) {
		t.Errorf("Remove(scalar) error = %v, want ErrWrongKeyKind", err)
	}
	if err := cfg.Add("nope", "x"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Add(unknown) error = %v, want ErrUnknownKey", err)
	}
}

func TestConfig_Entries(t *testing.T) {
	cfg := NewDefaultConfig()
	entries := cfg.Entries()

	if len(entries) != len(Keys()) {
		t.Fatalf("Entries() returned %d entries, want %d", len(entries), len(Keys()))
	}
	for i, key := range Keys() {
		if entries[i].Key != key {
			t.Errorf("entries[%d].Key = %q, want %q", i, entries[i].Key, key)
		}
	}

	if entries[0].Kind != ScalarKey || entries[0].Value != DefaultNaming {
		t.Errorf("naming entry = %+v", entries[0])
	}

	folders := entries[5]
	if folders.Kind != ListKey || !slices.Equal(folders.Values, DefaultBlacklistedFolderNames) {
		t.Errorf("folder entry = %+v", folders)
	}

	// Entries returns copies
	folders.Values[0] = "changed"
	if cfg.BlacklistedFolderNames[0] == "changed" {
		t.Error("Entries() exposed the underlying slice")
	}
}

func TestFilterPolicy_Clone(t *testing.T) {
	cfg := NewDefaultConfig()
	clone := cfg.FilterPolicy.Clone()
	clone.BlacklistedFolderNames[0] = "changed"

	if cfg.BlacklistedFolderNames[0] == "changed" {
		t.Error("Clone() shares slices with the original")
	}
}

func TestKeyKind_String(t *testing.T) {
	if ScalarKey.String() != "scalar" || ListKey.String() != "list" {
		t.Errorf("KeyKind strings = %q, %q", ScalarKey.String(), ListKey.String())
	}
}

func TestKeyKindOf(t *testing.T) {
	kind, err := KeyKindOf("NAMING")
	if err != nil || kind != ScalarKey {
		t.Errorf("KeyKindOf(NAMING) = %v, %v; want scalar", kind, err)
	}

	kind, err = KeyKindOf(KeyBlacklistedFileExtensions)
	if err != nil || kind != ListKey {
		t.Errorf("KeyKindOf(%s) = %v, %v; want list", KeyBlacklistedFileExtensions, kind, err)
	}

	if _, err := KeyKindOf("colour"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("KeyKindOf(colour) error = %v, want ErrUnknownKey", err)
	}
}
