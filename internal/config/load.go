package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. MIA_NAMING or MIA_OUTPUT_DIR.
const EnvPrefix = "MIA"

// Load reads the config file at DefaultConfigPath.
// A missing config file is not an error: the defaults (with environment
// overrides applied) are returned instead. A config file that exists but
// cannot be parsed or fails validation is an error.
func Load() (*Config, error) {
	path := DefaultConfigPath()
	if !ConfigExistsAt(path) {
		v := newViper()
		return unmarshalConfig(v)
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(ExpandPath(path))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found; %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config from %s; %w", path, err)
	}

	return unmarshalConfig(v)
}

// LoadWithDefaults returns configuration using defaults only.
func LoadWithDefaults() *Config {
	cfg := NewDefaultConfig()
	return &cfg
}

// newViper returns a viper instance with defaults and environment overrides registered.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setViperDefaults(v)
	return v
}

// unmarshalConfig converts viper config to typed Config struct.
func unmarshalConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setViperDefaults registers all default configuration values with a viper instance.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)
	v.SetDefault("output_dir", DefaultOutputDir)

	// Filter policy defaults
	v.SetDefault("naming", DefaultNaming)
	v.SetDefault("blacklisted_file_names", DefaultBlacklistedFileNames)
	v.SetDefault("blacklisted_folder_names", DefaultBlacklistedFolderNames)
	v.SetDefault("blacklisted_file_extensions", DefaultBlacklistedFileExtensions)
}
