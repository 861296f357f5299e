package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ManifestDir is the hidden directory holding skill manifests.
const ManifestDir = ".claude-plugin"

// CommandsDir is the directory holding slash command files, relative to
// the skill root.
const CommandsDir = ".claude/commands"

// SkillsDir is the directory holding skill definition files.
const SkillsDir = "skills"

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigPath returns the skillkit configuration directory
func ConfigPath() string {
	return filepath.Join(HomeDir(), ".skillkit")
}

// TemplatesPath returns the user template override directory
func TemplatesPath() string {
	return filepath.Join(ConfigPath(), "templates")
}

// PluginManifestPath returns the plugin manifest location for a skill directory
func PluginManifestPath(skillDir string) string {
	return filepath.Join(skillDir, ManifestDir, "plugin.json")
}

// MarketplaceManifestPath returns the marketplace manifest location for a skill directory
func MarketplaceManifestPath(skillDir string) string {
	return filepath.Join(skillDir, ManifestDir, "marketplace.json")
}

// SkillDefinitionPath returns the markdown definition location for a named skill
func SkillDefinitionPath(skillDir, skillName string) string {
	return filepath.Join(skillDir, SkillsDir, skillName+".md")
}

// CommandsPath returns the slash commands directory for a skill directory
func CommandsPath(skillDir string) string {
	return filepath.Join(skillDir, ".claude", "commands")
}

// ExpandPath expands a leading ~ to the user's home directory and resolves
// relative paths against baseDir. Returns the path unchanged when it is
// already absolute.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
