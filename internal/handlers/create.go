package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauern/skillkit/internal/logging"
	"github.com/klauern/skillkit/internal/template"
	"github.com/klauern/skillkit/internal/util"
)

// CreateRequest holds the inputs for creating a new skill project.
type CreateRequest struct {
	SkillName        string
	SkillDescription string
	AuthorName       string
	AuthorEmail      string
	GitHubUser       string
	TargetDir        string
	Version          string
}

// skeletonDirs are created inside every new skill project.
var skeletonDirs = []string{
	util.ManifestDir,
	util.CommandsDir,
	util.SkillsDir,
	"templates/skill",
	"templates/command",
	"config",
	"docs",
}

// CreateSkill scaffolds a new skill project directory from the built-in
// templates. The target directory must not already exist.
func (h *Handler) CreateSkill(req CreateRequest) Response {
	skillName := strings.TrimSpace(req.SkillName)
	description := strings.TrimSpace(req.SkillDescription)
	authorName := strings.TrimSpace(req.AuthorName)
	authorEmail := strings.TrimSpace(req.AuthorEmail)
	githubUser := strings.TrimSpace(req.GitHubUser)

	switch {
	case skillName == "":
		return failure("skill_name is required")
	case description == "":
		return failure("skill_description is required")
	case authorName == "":
		return failure("author_name is required")
	case authorEmail == "":
		return failure("author_email is required")
	case githubUser == "":
		return failure("github_user is required")
	}

	if !isKebabCase(skillName) {
		return failure("skill_name must be in kebab-case (lowercase with hyphens)")
	}

	targetDir := req.TargetDir
	if targetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return failure(fmt.Sprintf("cannot determine working directory: %v", err))
		}
		targetDir = cwd
	}

	version := req.Version
	if version == "" {
		version = "0.1.0"
	}

	skillPath := filepath.Join(targetDir, skillName)
	if _, err := os.Stat(skillPath); err == nil {
		return failure(fmt.Sprintf("Directory already exists: %s", skillPath))
	}

	logging.Info("creating skill project",
		logging.Skill(skillName),
		logging.Path(skillPath),
	)

	for _, dir := range skeletonDirs {
		if err := os.MkdirAll(filepath.Join(skillPath, filepath.FromSlash(dir)), 0o750); err != nil {
			return failure(fmt.Sprintf("Failed to create directory %s: %v", dir, err))
		}
	}

	ctx := template.Context{
		"skill_name":        skillName,
		"skill_description": description,
		"author_name":       authorName,
		"author_email":      authorEmail,
		"github_user":       githubUser,
		"version":           version,
	}

	fileTemplates := []struct {
		path     string
		template string
	}{
		{util.ManifestDir + "/marketplace.json", "skill/marketplace.json.template"},
		{util.ManifestDir + "/plugin.json", "skill/plugin.json.template"},
		{util.SkillsDir + "/" + skillName + ".md", "skill/skill.md.template"},
		{"README.md", "skill/README.md.template"},
		{".claude/CLAUDE.md", "skill/CLAUDE.md.template"},
		{"install.sh", "skill/install.sh.template"},
	}

	var createdFiles []string

	for _, ft := range fileTemplates {
		rendered, err := h.renderer.Render(ft.template, ctx)
		if err != nil {
			return failure(fmt.Sprintf("Failed to create %s: %v", ft.path, err))
		}

		fullPath := filepath.Join(skillPath, filepath.FromSlash(ft.path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			return failure(fmt.Sprintf("Failed to create %s: %v", ft.path, err))
		}
		if err := os.WriteFile(fullPath, []byte(rendered), 0o600); err != nil {
			return failure(fmt.Sprintf("Failed to create %s: %v", ft.path, err))
		}
		createdFiles = append(createdFiles, ft.path)
	}

	if err := os.WriteFile(filepath.Join(skillPath, ".gitignore"), []byte(gitignoreContent), 0o600); err != nil {
		return failure(fmt.Sprintf("Failed to create .gitignore: %v", err))
	}
	createdFiles = append(createdFiles, ".gitignore")

	license := licenseContent(authorName, time.Now())
	if err := os.WriteFile(filepath.Join(skillPath, "LICENSE"), []byte(license), 0o600); err != nil {
		return failure(fmt.Sprintf("Failed to create LICENSE: %v", err))
	}
	createdFiles = append(createdFiles, "LICENSE")

	installSh := filepath.Join(skillPath, "install.sh")
	// #nosec G302 - installer scripts must be executable
	if err := os.Chmod(installSh, 0o755); err != nil {
		return failure(fmt.Sprintf("Failed to make install.sh executable: %v", err))
	}

	return Response{
		Success: true,
		Message: fmt.Sprintf("Successfully created skill: %s", skillName),
		Data: map[string]any{
			"skill_name":    skillName,
			"skill_path":    skillPath,
			"created_files": createdFiles,
		},
	}
}
