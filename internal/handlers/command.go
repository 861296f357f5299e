package handlers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauern/skillkit/internal/logging"
	"github.com/klauern/skillkit/internal/template"
	"github.com/klauern/skillkit/internal/util"
)

// AddCommandRequest holds the inputs for adding a slash command to an
// existing skill.
type AddCommandRequest struct {
	SkillDir            string
	CommandName         string
	CommandDescription  string
	CommandInstructions string
}

// AddCommand writes a new slash-command file into a skill and registers
// it in the plugin manifest. A manifest update failure still reports
// success, with a warning, since the command file itself was created.
func (h *Handler) AddCommand(req AddCommandRequest) Response {
	skillDir := strings.TrimSpace(req.SkillDir)
	commandName := strings.TrimSpace(req.CommandName)
	description := strings.TrimSpace(req.CommandDescription)
	instructions := strings.TrimSpace(req.CommandInstructions)

	switch {
	case skillDir == "":
		return failure("skill_dir is required")
	case commandName == "":
		return failure("command_name is required")
	case description == "":
		return failure("command_description is required")
	}

	if _, err := os.Stat(skillDir); err != nil {
		return failure(fmt.Sprintf("Skill directory not found: %s", skillDir))
	}

	if !isKebabCase(commandName) {
		return failure("command_name must be in kebab-case (lowercase with hyphens)")
	}

	commandsDir := util.CommandsPath(skillDir)
	if err := os.MkdirAll(commandsDir, 0o750); err != nil {
		return failure(fmt.Sprintf("Failed to create commands directory: %v", err))
	}

	commandFile := filepath.Join(commandsDir, commandName+".md")
	if _, err := os.Stat(commandFile); err == nil {
		return failure(fmt.Sprintf("Command already exists: %s", commandName))
	}

	if instructions == "" {
		instructions = fmt.Sprintf("Use the skill to handle %s requests.", commandName)
	}

	content, err := h.renderer.Render("command/command.md.template", template.Context{
		"command_name":         commandName,
		"command_description":  description,
		"command_instructions": instructions,
	})
	if err != nil {
		return failure(fmt.Sprintf("Failed to render command: %v", err))
	}

	if err := os.WriteFile(commandFile, []byte(content), 0o600); err != nil {
		return failure(fmt.Sprintf("Failed to write command file: %v", err))
	}

	logging.Info("added slash command",
		logging.Path(commandFile),
		logging.Operation("add-command"),
	)

	relFile := util.CommandsDir + "/" + commandName + ".md"

	if err := registerCommand(skillDir, commandName); err != nil {
		return Response{
			Success: true,
			Message: fmt.Sprintf("Command created but failed to update plugin.json: %v", err),
			Data: map[string]any{
				"command_name": commandName,
				"command_file": relFile,
				"warning":      "Manually update plugin.json to register this command",
			},
		}
	}

	return Response{
		Success: true,
		Message: fmt.Sprintf("Successfully added command: %s", commandName),
		Data: map[string]any{
			"command_name": commandName,
			"command_file": relFile,
			"description":  description,
		},
	}
}

// registerCommand appends the command path to the plugin manifest's
// commands array. A missing manifest is not an error; the command file
// stands on its own.
func registerCommand(skillDir, commandName string) error {
	manifestPath := util.PluginManifestPath(skillDir)

	data, err := os.ReadFile(manifestPath) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read plugin manifest: %w", err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("failed to parse plugin manifest: %w", err)
	}

	commands, _ := manifest["commands"].([]any)
	commands = append(commands, "./"+util.CommandsDir+"/"+commandName+".md")
	manifest["commands"] = commands

	updated, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plugin manifest: %w", err)
	}

	if err := os.WriteFile(manifestPath, updated, 0o600); err != nil {
		return fmt.Errorf("failed to write plugin manifest: %w", err)
	}

	return nil
}
