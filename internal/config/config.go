// Package config handles .gistpad configuration file parsing.
//
// The .gistpad file is located at the workspace root and contains:
//
//	api_url: "https://api.github.com"   - Gist store base URL
//	token: "ghp_..."                    - Bearer credential (optional; env wins)
//	description: "my notes"             - Description for the created backup
//	public: false                       - Whether the backup is public
//	sync_interval_seconds: 120          - Periodic check interval
//	data_dir: ".gistpad-data"           - Workspace/state directory (relative to config)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file.
const FileName = ".gistpad"

// DefaultAPIURL is the gist store endpoint used when api_url is unset.
const DefaultAPIURL = "https://api.github.com"

// DefaultDataDir holds the workspace and sync state files, relative to the
// config file's directory.
const DefaultDataDir = ".gistpad-data"

// DefaultInterval is the periodic sync check interval.
const DefaultInterval = 2 * time.Minute

// Environment variables consulted for the credential, in order.
var tokenEnvVars = []string{"GISTPAD_TOKEN", "GITHUB_TOKEN"}

// customPath holds an optional custom config file path.
// When empty, Load() uses the default FileName.
var customPath string

// SetPath sets a custom config file path for Load() to use.
// Pass an empty string to reset to the default path.
func SetPath(path string) {
	customPath = path
}

// GetPath returns the current config file path.
// Returns the custom path if set, otherwise the default FileName.
func GetPath() string {
	if customPath != "" {
		return customPath
	}
	return FileName
}

// FindPath resolves the config file path using the same logic as Load(),
// without reading or parsing the file contents.
func FindPath() (string, error) {
	if customPath != "" {
		return customPath, nil
	}
	return findDefaultConfigPath()
}

var urlPattern = regexp.MustCompile(`^https?://[^\s]+$`)

// Config represents the .gistpad configuration file.
type Config struct {
	APIURL              string `yaml:"api_url,omitempty"`
	Token               string `yaml:"token,omitempty"`
	Description         string `yaml:"description,omitempty"`
	Public              bool   `yaml:"public,omitempty"`
	SyncIntervalSeconds int    `yaml:"sync_interval_seconds,omitempty"`
	DataDir             string `yaml:"data_dir,omitempty"`

	// path is where the config was loaded from; DataDir resolves against it.
	path string
}

// Load reads and parses the .gistpad configuration file.
// Uses the custom path if set via SetPath(), otherwise walks up from the
// current directory.
func Load() (*Config, error) {
	if customPath != "" {
		return LoadFrom(customPath)
	}

	path, err := findDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and parses a .gistpad configuration file from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err // Return unwrapped for os.IsNotExist() checks
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.path = path

	return &cfg, nil
}

func findDefaultConfigPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return FileName, nil
	}

	dir := cwd
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// Return an IsNotExist error with a helpful path (cwd) so callers can
	// still rely on os.IsNotExist(err).
	candidate := filepath.Join(cwd, FileName)
	return candidate, &os.PathError{Op: "open", Path: candidate, Err: os.ErrNotExist}
}

// Save writes the configuration to the config file.
// Uses the custom path if set via SetPath(), otherwise uses the default FileName.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = GetPath()
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write with header comment
	header := "# Generated by: gpd init\n# Contains your API token - add to .gitignore\n\n"
	content := header + string(data)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// Validate checks that the present fields are valid.
func (c *Config) Validate() error {
	if c.APIURL != "" && !urlPattern.MatchString(c.APIURL) {
		return fmt.Errorf("api_url must be a valid HTTP(S) URL")
	}
	if c.SyncIntervalSeconds < 0 {
		return fmt.Errorf("sync_interval_seconds must not be negative")
	}
	return nil
}

// ResolvedAPIURL returns the configured store URL or the default.
func (c *Config) ResolvedAPIURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	return DefaultAPIURL
}

// ResolvedDataDir returns the absolute data directory, resolving the
// configured value against the config file's directory.
func (c *Config) ResolvedDataDir() string {
	dir := c.DataDir
	if dir == "" {
		dir = DefaultDataDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	base := filepath.Dir(c.path)
	if c.path == "" {
		base = "."
	}
	return filepath.Join(base, dir)
}

// ResolvedInterval returns the periodic check interval.
func (c *Config) ResolvedInterval() time.Duration {
	if c.SyncIntervalSeconds > 0 {
		return time.Duration(c.SyncIntervalSeconds) * time.Second
	}
	return DefaultInterval
}

// ResolvedToken returns the current credential, or "" if none. Environment
// variables take precedence over the config file so rotated tokens don't
// require editing .gistpad.
func (c *Config) ResolvedToken() string {
	for _, name := range tokenEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return c.Token
}

// ResolvedDescription returns the backup description.
func (c *Config) ResolvedDescription() string {
	if c.Description != "" {
		return c.Description
	}
	return "gistpad notes backup"
}
