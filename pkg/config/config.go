// Package config loads and validates the snapfetch YAML configuration. It
// resolves the working directories under the user's home directory and turns
// the retry section into a fetch.Policy.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/snapfetch/snapfetch/pkg/errors"
	"github.com/snapfetch/snapfetch/pkg/fetch"
)

// Config represents the full snapfetch configuration file.
type Config struct {
	// Snapshot source. Either a single URL or an ordered list of part URLs;
	// SnapshotFilename names the assembled file and is mandatory when more
	// than one URL is given.
	SnapshotURL      string   `yaml:"snapshot_url,omitempty"`
	SnapshotURLs     []string `yaml:"snapshot_urls,omitempty"`
	SnapshotFilename string   `yaml:"snapshot_filename,omitempty"`

	// Node binary.
	BinaryURL          string `yaml:"binary_url"`
	BinaryRelativePath string `yaml:"binary_relative_path"`

	// Chain identity.
	ChainID      string `yaml:"chain_id"`
	Moniker      string `yaml:"moniker"`
	ChainHomeDir string `yaml:"chain_home_dir,omitempty"`

	AddrbookURL string `yaml:"addrbook_url,omitempty"`

	// Overrides deep-merged into the node's TOML configuration files.
	AppOverrides    map[string]interface{} `yaml:"app_overrides,omitempty"`
	ConfigOverrides map[string]interface{} `yaml:"config_overrides,omitempty"`

	S3            S3Config    `yaml:"s3,omitempty"`
	DownloadRetry RetryConfig `yaml:"download_retry,omitempty"`

	// Lifecycle hooks, each run through the shell.
	PreStartCommand             string `yaml:"pre_start_command,omitempty"`
	PostStartCommand            string `yaml:"post_start_command,omitempty"`
	PostStartPattern            string `yaml:"post_start_pattern,omitempty"`
	PostSnapshotDownloadCommand string `yaml:"post_snapshot_download_command,omitempty"`
	PostSnapshotExtractCommand  string `yaml:"post_snapshot_extract_command,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`

	// Derived directories, resolved at load time.
	BaseDir      string `yaml:"-"`
	DownloadsDir string `yaml:"-"`
	WorkspaceDir string `yaml:"-"`
	HomeDir      string `yaml:"-"`
}

// S3Config carries optional object-storage settings.
type S3Config struct {
	Region string `yaml:"region,omitempty"`
}

// RetryConfig is the download_retry section of the config file.
type RetryConfig struct {
	MaxRetries        uint32   `yaml:"max_retries"`
	InitialDelay      Duration `yaml:"initial_delay"`
	MaxDelay          Duration `yaml:"max_delay"`
	BackoffMultiplier float64  `yaml:"backoff_multiplier"`
}

// Policy converts the section into the engine's retry policy.
func (r RetryConfig) Policy() fetch.Policy {
	return fetch.Policy{
		MaxRetries:   r.MaxRetries,
		InitialDelay: time.Duration(r.InitialDelay),
		MaxDelay:     time.Duration(r.MaxDelay),
		Multiplier:   r.BackoffMultiplier,
	}
}

// Duration is a time.Duration that unmarshals from YAML strings like "30s"
// or bare numbers interpreted as seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw interface{}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "invalid duration %q", v)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	case float64:
		*d = Duration(time.Duration(v * float64(time.Second)))
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Default configuration values.
const (
	// DefaultBaseDirName is the directory under the user's home that holds
	// downloads and the node workspace.
	DefaultBaseDirName = ".snapfetch"

	// DefaultPostStartPattern is the log line that marks the node as having
	// caught up, firing the post-start hook.
	DefaultPostStartPattern = "committed state"

	// DefaultLogLevel is used when the config does not set one.
	DefaultLogLevel = "info"
)

// DefaultRetryConfig returns the download_retry section matching the engine
// defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        fetch.DefaultMaxRetries,
		InitialDelay:      Duration(fetch.DefaultInitialDelay),
		MaxDelay:          Duration(fetch.DefaultMaxDelay),
		BackoffMultiplier: fetch.DefaultMultiplier,
	}
}

// LoadConfig loads configuration from a file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config file %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader, applies
// defaults, resolves directories and validates the result.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.resolveDirs(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.DownloadRetry == (RetryConfig{}) {
		c.DownloadRetry = DefaultRetryConfig()
	}
	if c.PostStartPattern == "" {
		c.PostStartPattern = DefaultPostStartPattern
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func (c *Config) resolveDirs() error {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return errors.Wrap(err, "failed to determine user home directory")
	}

	c.BaseDir = filepath.Join(userHome, DefaultBaseDirName)
	c.DownloadsDir = filepath.Join(c.BaseDir, "downloads")
	c.WorkspaceDir = filepath.Join(c.BaseDir, "workspace")
	if c.ChainHomeDir != "" {
		c.HomeDir = c.ChainHomeDir
	} else {
		c.HomeDir = filepath.Join(c.WorkspaceDir, "home")
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if c.BinaryURL == "" {
		return errors.Wrap(errors.ErrConfigValidation, "binary_url is required")
	}
	if c.BinaryRelativePath == "" {
		return errors.Wrap(errors.ErrConfigValidation, "binary_relative_path is required")
	}
	if c.ChainID == "" {
		return errors.Wrap(errors.ErrConfigValidation, "chain_id is required")
	}
	if c.Moniker == "" {
		return errors.Wrap(errors.ErrConfigValidation, "moniker is required")
	}
	if len(c.SnapshotURLs) > 1 && c.SnapshotFilename == "" {
		return errors.ErrMissingSnapshotFilename
	}
	if c.DownloadRetry.BackoffMultiplier < 1.0 {
		return errors.Wrapf(errors.ErrConfigValidation,
			"download_retry.backoff_multiplier must be >= 1.0, got %v", c.DownloadRetry.BackoffMultiplier)
	}
	return nil
}

// SnapshotURLList returns the ordered snapshot part URLs, falling back to the
// single snapshot_url when no parts are configured. An empty result means no
// snapshot is configured at all.
func (c *Config) SnapshotURLList() []string {
	if len(c.SnapshotURLs) > 0 {
		return c.SnapshotURLs
	}
	if c.SnapshotURL != "" {
		return []string{c.SnapshotURL}
	}
	return nil
}

// SnapshotFileName returns the local filename of the (assembled) snapshot.
func (c *Config) SnapshotFileName() (string, error) {
	urls := c.SnapshotURLList()
	if len(urls) == 0 {
		return "", errors.Wrap(errors.ErrConfigValidation, "no snapshot URLs configured")
	}
	if len(urls) == 1 {
		if c.SnapshotFilename != "" {
			return c.SnapshotFilename, nil
		}
		return fetch.Filename(urls[0])
	}
	// Guaranteed non-empty by Validate.
	return c.SnapshotFilename, nil
}

// BinaryPath returns the path of the extracted node binary inside the
// workspace.
func (c *Config) BinaryPath() string {
	return filepath.Join(c.WorkspaceDir, filepath.FromSlash(c.BinaryRelativePath))
}
