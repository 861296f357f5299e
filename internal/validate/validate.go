// Package validate checks the structure of a skill directory: required
// files, manifest JSON syntax, skill-definition frontmatter, executable
// bits, and slash-command files. Validation is exhaustive rather than
// fail-fast; every finding lands in the result.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauern/skillkit/internal/config"
	"github.com/klauern/skillkit/internal/frontmatter"
	"github.com/klauern/skillkit/internal/logging"
	"github.com/klauern/skillkit/internal/util"
)

// manifestFiles are the JSON files checked for syntax when present.
var manifestFiles = []string{
	util.ManifestDir + "/marketplace.json",
	util.ManifestDir + "/plugin.json",
}

// Validator checks a skill directory against the configured
// requirements.
type Validator struct {
	requiredFiles       []string
	requiredFrontmatter []string
	executableFiles     []string
}

// NewValidator creates a validator from configuration.
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		requiredFiles:       cfg.Validation.RequiredFiles,
		requiredFrontmatter: cfg.Validation.RequiredFrontmatter,
		executableFiles:     cfg.Validation.ExecutableFiles,
	}
}

// ValidateSkill runs all checks against skillDir. An empty skillName is
// auto-detected from the plugin manifest, the skills directory, or the
// directory name. Only a missing or non-directory root aborts early.
func (v *Validator) ValidateSkill(skillDir, skillName string) *Result {
	defer logging.Timer("validate")()

	result := &Result{}

	info, err := os.Stat(skillDir)
	if err != nil {
		result.AddError(fmt.Sprintf("Skill directory not found: %s", skillDir))
		return result
	}
	if !info.IsDir() {
		result.AddError(fmt.Sprintf("Path is not a directory: %s", skillDir))
		return result
	}

	result.AddInfo(fmt.Sprintf("Validating skill at: %s", skillDir))

	if skillName == "" {
		skillName = detectSkillName(skillDir)
		if skillName != "" {
			result.AddInfo(fmt.Sprintf("Detected skill name: %s", skillName))
		} else {
			result.AddWarning("Could not auto-detect skill name")
		}
	}

	logging.Debug("running validation checks",
		logging.Skill(skillName),
		logging.Path(skillDir),
	)

	v.checkRequiredFiles(skillDir, skillName, result)
	v.checkManifestJSON(skillDir, result)
	if skillName != "" {
		v.checkSkillDefinition(skillDir, skillName, result)
	}
	v.checkExecutableBits(skillDir, result)
	v.checkCommands(skillDir, result)

	return result
}

// detectSkillName resolves a skill name without one being supplied.
// A parseable plugin manifest wins even when its name field is empty;
// otherwise a lone markdown file in the skills directory names the
// skill, falling back to the directory's own name.
func detectSkillName(skillDir string) string {
	manifest := util.PluginManifestPath(skillDir)
	if data, err := os.ReadFile(manifest); err == nil { // #nosec G304
		var parsed struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(data, &parsed) == nil {
			return parsed.Name
		}
	}

	skillFiles, _ := filepath.Glob(filepath.Join(skillDir, util.SkillsDir, "*.md"))
	if len(skillFiles) == 1 {
		base := filepath.Base(skillFiles[0])
		return strings.TrimSuffix(base, ".md")
	}

	return filepath.Base(skillDir)
}

// checkRequiredFiles verifies each configured required-file pattern.
func (v *Validator) checkRequiredFiles(skillDir, skillName string, result *Result) {
	for _, pattern := range v.requiredFiles {
		relPath := pattern
		if skillName != "" {
			relPath = strings.ReplaceAll(pattern, "{skill_name}", skillName)
		}

		if _, err := os.Stat(filepath.Join(skillDir, filepath.FromSlash(relPath))); err != nil {
			result.AddError(fmt.Sprintf("Required file missing: %s", relPath))
		} else {
			result.AddInfo(fmt.Sprintf("Found: %s", relPath))
		}
	}
}

// checkManifestJSON parses the known manifest files when present. A
// missing manifest is not reported here; the required-file check owns
// existence.
func (v *Validator) checkManifestJSON(skillDir string, result *Result) {
	for _, relPath := range manifestFiles {
		fullPath := filepath.Join(skillDir, filepath.FromSlash(relPath))
		data, err := os.ReadFile(fullPath) // #nosec G304
		if err != nil {
			continue
		}

		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			result.AddError(fmt.Sprintf("Invalid JSON in %s: %s", relPath, err.Error()))
		} else {
			result.AddInfo(fmt.Sprintf("Valid JSON: %s", relPath))
		}
	}
}

// checkSkillDefinition verifies the skill markdown file and its
// frontmatter fields.
func (v *Validator) checkSkillDefinition(skillDir, skillName string, result *Result) {
	relPath := util.SkillsDir + "/" + skillName + ".md"
	fullPath := filepath.Join(skillDir, util.SkillsDir, skillName+".md")

	data, err := os.ReadFile(fullPath) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			result.AddError(fmt.Sprintf("Skill definition not found: %s", relPath))
		} else {
			result.AddError(fmt.Sprintf("Error reading skill definition: %s", err.Error()))
		}
		return
	}

	split := frontmatter.Split(data)
	if !split.HasFrontmatter {
		result.AddWarning(fmt.Sprintf("No frontmatter found in %s", relPath))
		return
	}

	fields := frontmatter.Fields(data)
	for _, field := range v.requiredFrontmatter {
		if value, ok := fields[field]; ok {
			result.AddInfo(fmt.Sprintf("Frontmatter field '%s': %s", field, value))
		} else {
			result.AddError(fmt.Sprintf("Missing required frontmatter field: %s", field))
		}
	}
}

// checkExecutableBits warns when a configured executable file lacks an
// execute bit. Missing files are skipped; existence is owned by the
// required-file check.
func (v *Validator) checkExecutableBits(skillDir string, result *Result) {
	for _, relPath := range v.executableFiles {
		fullPath := filepath.Join(skillDir, filepath.FromSlash(relPath))
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}

		if info.Mode().Perm()&0o111 != 0 {
			result.AddInfo(fmt.Sprintf("Executable: %s", relPath))
		} else {
			result.AddWarning(fmt.Sprintf("File not executable: %s (run: chmod +x %s)", relPath, relPath))
		}
	}
}

// checkCommands inspects the slash-command directory when it exists.
// Each command file should carry a description frontmatter field.
func (v *Validator) checkCommands(skillDir string, result *Result) {
	commandsDir := filepath.Join(skillDir, filepath.FromSlash(util.CommandsDir))

	if info, err := os.Stat(commandsDir); err != nil || !info.IsDir() {
		result.AddInfo("No slash commands directory (" + util.CommandsDir + "/)")
		return
	}

	commandFiles, _ := filepath.Glob(filepath.Join(commandsDir, "*.md"))
	if len(commandFiles) == 0 {
		result.AddInfo("No slash commands found")
		return
	}

	result.AddInfo(fmt.Sprintf("Found %d slash command(s)", len(commandFiles)))

	for _, cmdFile := range commandFiles {
		name := filepath.Base(cmdFile)

		data, err := os.ReadFile(cmdFile) // #nosec G304
		if err != nil {
			result.AddWarning(fmt.Sprintf("Error reading command %s: %s", name, err.Error()))
			continue
		}

		fields := frontmatter.Fields(data)
		if desc, ok := fields["description"]; ok {
			result.AddInfo(fmt.Sprintf("Command %s: %s", strings.TrimSuffix(name, ".md"), desc))
		} else {
			result.AddWarning(fmt.Sprintf("Command %s missing 'description' in frontmatter", name))
		}
	}
}
