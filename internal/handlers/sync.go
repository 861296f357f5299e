package handlers

import (
	"fmt"
	"strings"

	"github.com/klauern/skillkit/internal/sync"
)

// SyncRequest holds the inputs for syncing a skill between trees.
type SyncRequest struct {
	SourceDir string
	TargetDir string
	SkillName string
	Options   sync.Options
}

// SyncSkill copies the configured skill files from source to target.
func (h *Handler) SyncSkill(req SyncRequest) Response {
	sourceDir := strings.TrimSpace(req.SourceDir)
	targetDir := strings.TrimSpace(req.TargetDir)
	skillName := strings.TrimSpace(req.SkillName)

	switch {
	case sourceDir == "":
		return failure("source_dir is required")
	case targetDir == "":
		return failure("target_dir is required")
	case skillName == "":
		return failure("skill_name is required")
	}

	result := h.engine.Sync(sourceDir, targetDir, skillName, req.Options)

	data := map[string]any{
		"copied_files":  result.CopiedFiles,
		"skipped_files": result.SkippedFiles,
		"backups":       result.Backups,
		"errors":        result.Errors,
		"dry_run":       result.DryRun,
	}

	if !result.Success() {
		return Response{
			Success: false,
			Error:   "Sync failed",
			Data:    data,
		}
	}

	mode := "Synced"
	if result.DryRun {
		mode = "DRY RUN"
	}

	return Response{
		Success: true,
		Message: fmt.Sprintf("%s: %d file(s) synced", mode, len(result.CopiedFiles)),
		Data:    data,
	}
}

// ListSyncFiles previews the files a sync would copy from sourceDir.
func (h *Handler) ListSyncFiles(sourceDir, skillName string) []string {
	return h.engine.ListFiles(sourceDir, skillName)
}
