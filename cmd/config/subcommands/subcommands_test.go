package subcommands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/config"
	"github.com/azuyamat/mia/internal/testutil"
)

func setupConfigDir(t *testing.T) string {
	t.Helper()
	return testutil.NewTestEnv(t).ConfigDir
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// execute runs a copy of src so package-level flag state is reset per test.
func execute(t *testing.T, src *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	showRaw = false
	resetConfirm = false

	cmd := &cobra.Command{
		Use:     src.Use,
		Args:    src.Args,
		PreRunE: src.PreRunE,
		RunE:    src.RunE,
	}
	switch src {
	case ShowCmd:
		cmd.Flags().BoolVar(&showRaw, "raw", false, "")
	case ResetCmd:
		cmd.Flags().BoolVar(&resetConfirm, "confirm", false, "")
	}

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestSetCmd_PersistsScalar(t *testing.T) {
	dir := setupConfigDir(t)

	out, err := execute(t, SetCmd, "", "naming", ":name-:date")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !strings.Contains(out, "Set naming = :name-:date") {
		t.Errorf("unexpected output: %s", out)
	}

	cfg, err := config.LoadFromPath(filepath.Join(dir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if cfg.Naming != ":name-:date" {
		t.Errorf("Naming = %q, want %q", cfg.Naming, ":name-:date")
	}
}

func TestSetCmd_InvalidValueNotWritten(t *testing.T) {
	setupConfigDir(t)

	_, err := execute(t, SetCmd, "", "log_level", "loud")
	if !config.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if config.ConfigExists() {
		t.Error("config file written despite validation failure")
	}
}

func TestSetCmd_ListKeyRejected(t *testing.T) {
	setupConfigDir(t)

	_, err := execute(t, SetCmd, "", "blacklisted_folder_names", "dist")
	if !errors.Is(err, config.ErrWrongKeyKind) {
		t.Errorf("expected ErrWrongKeyKind, got %v", err)
	}
}

func TestSetCmd_UnknownKey(t *testing.T) {
	setupConfigDir(t)

	_, err := execute(t, SetCmd, "", "colour", "red")
	if !errors.Is(err, config.ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestAddRemoveCmd(t *testing.T) {
	dir := setupConfigDir(t)
	path := filepath.Join(dir, config.ConfigFileName)

	if _, err := execute(t, AddCmd, "", "blacklisted_file_extensions", ".LOG", "tmp"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	want := []string{"zip", "pdf", "log", "tmp"}
	if strings.Join(cfg.BlacklistedFileExtensions, ",") != strings.Join(want, ",") {
		t.Errorf("extensions = %v, want %v", cfg.BlacklistedFileExtensions, want)
	}

	if _, err := execute(t, RemoveCmd, "", "blacklisted_file_extensions", "pdf"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	cfg, err = config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	want = []string{"zip", "log", "tmp"}
	if strings.Join(cfg.BlacklistedFileExtensions, ",") != strings.Join(want, ",") {
		t.Errorf("extensions = %v, want %v", cfg.BlacklistedFileExtensions, want)
	}
}

func TestAddCmd_DuplicateRejected(t *testing.T) {
	setupConfigDir(t)

	_, err := execute(t, AddCmd, "", "blacklisted_folder_names", ".git")
	if !errors.Is(err, config.ErrValueExists) {
		t.Errorf("expected ErrValueExists, got %v", err)
	}
}

func TestRemoveCmd_MissingValue(t *testing.T) {
	setupConfigDir(t)

	_, err := execute(t, RemoveCmd, "", "blacklisted_folder_names", "vendor")
	if !errors.Is(err, config.ErrValueNotFound) {
		t.Errorf("expected ErrValueNotFound, got %v", err)
	}
}

func TestListCmd(t *testing.T) {
	setupConfigDir(t)

	out, err := execute(t, ListCmd, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	for _, want := range []string{
		"naming: :name",
		`output_dir: ""`,
		"blacklisted_folder_names: [.git, bin, obj, .idea, .vs]",
		"blacklisted_file_extensions: [zip, pdf]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	// Keys are listed in display order
	if strings.Index(out, "naming:") > strings.Index(out, "blacklisted_file_names:") {
		t.Errorf("keys out of order:\n%s", out)
	}
}

func TestShowCmd(t *testing.T) {
	dir := setupConfigDir(t)

	out, err := execute(t, ShowCmd, "")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "naming:") || !strings.Contains(out, "blacklisted_folder_names:") {
		t.Errorf("effective config missing keys:\n%s", out)
	}

	out, err = execute(t, ShowCmd, "", "--raw")
	if err != nil {
		t.Fatalf("show --raw failed: %v", err)
	}
	if !strings.Contains(out, "No configuration file found") {
		t.Errorf("expected missing file notice:\n%s", out)
	}

	writeConfigFile(t, dir, "naming: \"backup-:name\"\n")
	out, err = execute(t, ShowCmd, "", "--raw")
	if err != nil {
		t.Fatalf("show --raw failed: %v", err)
	}
	if !strings.Contains(out, "backup-:name") {
		t.Errorf("raw output missing file contents:\n%s", out)
	}
}

func TestValidateCmd(t *testing.T) {
	dir := setupConfigDir(t)

	out, err := execute(t, ValidateCmd, "")
	if err != nil || !strings.Contains(out, "No configuration file found") {
		t.Errorf("validate without file = %q, %v", out, err)
	}

	writeConfigFile(t, dir, "naming: \":name\"\n")
	out, err = execute(t, ValidateCmd, "")
	if err != nil || !strings.Contains(out, "Configuration is valid") {
		t.Errorf("validate valid file = %q, %v", out, err)
	}

	writeConfigFile(t, dir, "naming: \":name-:time\"\n")
	out, err = execute(t, ValidateCmd, "")
	if err == nil {
		t.Error("expected error for invalid naming template")
	}
	if !strings.Contains(out, "Configuration validation failed") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestResetCmd(t *testing.T) {
	dir := setupConfigDir(t)
	path := writeConfigFile(t, dir, "naming: \"x-:name\"\n")

	out, err := execute(t, ResetCmd, "n\n")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !strings.Contains(out, "Reset cancelled.") {
		t.Errorf("expected cancellation, got: %s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal("config removed despite cancellation")
	}

	out, err = execute(t, ResetCmd, "", "--confirm")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !strings.Contains(out, "Configuration reset to defaults.") {
		t.Errorf("unexpected output: %s", out)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file still exists after reset")
	}

	backups, _ := filepath.Glob(path + ".backup.*")
	if len(backups) != 1 {
		t.Errorf("expected one backup, found %d", len(backups))
	}
}

func TestResetCmd_NoFile(t *testing.T) {
	setupConfigDir(t)

	out, err := execute(t, ResetCmd, "", "--confirm")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !strings.Contains(out, "No configuration file found") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestEditCmd_CreatesDefaultFile(t *testing.T) {
	setupConfigDir(t)
	if _, err := os.Stat("/bin/true"); err != nil {
		t.Skip("/bin/true not available")
	}
	t.Setenv("EDITOR", "/bin/true")

	out, err := execute(t, EditCmd, "")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !config.ConfigExists() {
		t.Error("edit did not create the config file")
	}
	if !strings.Contains(out, "Configuration saved.") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestFindEditor(t *testing.T) {
	t.Setenv("EDITOR", "my-editor")
	if got := findEditor(); got != "my-editor" {
		t.Errorf("findEditor() = %q, want EDITOR value", got)
	}

	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "visual-editor")
	if got := findEditor(); got != "visual-editor" {
		t.Errorf("findEditor() = %q, want VISUAL value", got)
	}
}
