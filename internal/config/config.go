// Package config provides configuration management for skillkit.
// It supports JSON configuration files, environment variables, and sensible defaults.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauern/skillkit/internal/util"
)

// Config represents the complete skillkit configuration.
type Config struct {
	// Sync configures file synchronization behavior
	Sync SyncConfig `json:"sync"`

	// Validation configures skill structure validation
	Validation ValidationConfig `json:"validation"`

	// Templates configures template lookup
	Templates TemplatesConfig `json:"templates"`

	// Output configures display preferences
	Output OutputConfig `json:"output"`
}

// SyncConfig holds synchronization settings.
type SyncConfig struct {
	// BackupEnabled creates timestamped backups before overwriting target files
	BackupEnabled bool `json:"backup_enabled"`
	// BackupSuffix is inserted between the file stem and the backup timestamp
	BackupSuffix string `json:"backup_suffix"`
	// ConfirmOverwrite prompts before overwriting existing files in interactive mode
	ConfirmOverwrite bool `json:"confirm_overwrite"`
	// FilesToSync lists file and directory patterns to copy. Patterns may
	// contain a {skill_name} placeholder; a trailing slash marks a directory
	// synced recursively.
	FilesToSync []string `json:"files_to_sync"`
}

// ValidationConfig holds skill validation settings.
type ValidationConfig struct {
	// RequiredFiles lists paths that must exist in a valid skill.
	// Patterns may contain a {skill_name} placeholder.
	RequiredFiles []string `json:"required_files"`
	// RequiredFrontmatter lists frontmatter fields the skill definition must carry
	RequiredFrontmatter []string `json:"required_frontmatter"`
	// ExecutableFiles lists paths expected to carry an execute bit
	ExecutableFiles []string `json:"executable_files"`
}

// TemplatesConfig holds template lookup settings.
type TemplatesConfig struct {
	// Dir is a directory of template overrides. Templates not found there
	// fall back to the built-in set.
	Dir string `json:"dir,omitempty"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the default output format (text, json, yaml)
	Format string `json:"format"`
	// Color controls color output (auto, always, never)
	Color string `json:"color"`
	// Verbose enables verbose output
	Verbose bool `json:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			BackupEnabled:    true,
			BackupSuffix:     ".backup",
			ConfirmOverwrite: true,
			FilesToSync: []string{
				"skills/{skill_name}.md",
				".claude/commands/",
			},
		},
		Validation: ValidationConfig{
			RequiredFiles: []string{
				".claude-plugin/marketplace.json",
				".claude-plugin/plugin.json",
				"skills/{skill_name}.md",
				"install.sh",
				"README.md",
			},
			RequiredFrontmatter: []string{"name", "description"},
			ExecutableFiles:     []string{"install.sh"},
		},
		Templates: TemplatesConfig{},
		Output: OutputConfig{
			Format:  "text",
			Color:   "auto",
			Verbose: false,
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.json"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.ConfigPath(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	configPath := FilePath()
	// #nosec G304 - configPath is constructed from trusted config directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults with environment overrides
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	// Parse JSON over defaults
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	cfg.applyEnvironment()

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SKILLKIT_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	// Sync settings
	if v := os.Getenv("SKILLKIT_SYNC_BACKUP_ENABLED"); v != "" {
		c.Sync.BackupEnabled = parseBool(v)
	}
	if v := os.Getenv("SKILLKIT_SYNC_BACKUP_SUFFIX"); v != "" {
		c.Sync.BackupSuffix = v
	}
	if v := os.Getenv("SKILLKIT_SYNC_CONFIRM_OVERWRITE"); v != "" {
		c.Sync.ConfirmOverwrite = parseBool(v)
	}

	// Templates settings
	if v := os.Getenv("SKILLKIT_TEMPLATES_DIR"); v != "" {
		c.Templates.Dir = v
	}

	// Output settings
	if v := os.Getenv("SKILLKIT_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("SKILLKIT_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("SKILLKIT_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// TemplatesDir returns the template override directory, falling back to the
// user template directory when unset.
func (c *Config) TemplatesDir() string {
	if c.Templates.Dir != "" {
		return util.ExpandPath(c.Templates.Dir, mustGetwd())
	}
	return util.TemplatesPath()
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}
