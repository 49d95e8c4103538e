package config

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel  string `yaml:"log_level" mapstructure:"log_level"`
	LogFile   string `yaml:"log_file" mapstructure:"log_file"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"` // empty = archive next to the source

	FilterPolicy `yaml:",inline" mapstructure:",squash"`
}

// FilterPolicy holds the archive naming template and the default skip lists
// applied to every archive job.
type FilterPolicy struct {
	Naming                    string   `yaml:"naming" mapstructure:"naming"`
	BlacklistedFileNames      []string `yaml:"blacklisted_file_names,flow" mapstructure:"blacklisted_file_names"`
	BlacklistedFolderNames    []string `yaml:"blacklisted_folder_names,flow" mapstructure:"blacklisted_folder_names"`
	BlacklistedFileExtensions []string `yaml:"blacklisted_file_extensions,flow" mapstructure:"blacklisted_file_extensions"`
}

// Clone returns a deep copy of the policy.
func (p FilterPolicy) Clone() FilterPolicy {
	return FilterPolicy{
		Naming:                    p.Naming,
		BlacklistedFileNames:      append([]string(nil), p.BlacklistedFileNames...),
		BlacklistedFolderNames:    append([]string(nil), p.BlacklistedFolderNames...),
		BlacklistedFileExtensions: append([]string(nil), p.BlacklistedFileExtensions...),
	}
}
