package handlers

import (
	"fmt"
	"strings"
)

// ValidateRequest holds the inputs for validating a skill directory.
type ValidateRequest struct {
	SkillDir  string
	SkillName string
}

// ValidateSkill checks a skill directory's structure and reports every
// finding.
func (h *Handler) ValidateSkill(req ValidateRequest) Response {
	skillDir := strings.TrimSpace(req.SkillDir)
	skillName := strings.TrimSpace(req.SkillName)

	if skillDir == "" {
		return failure("skill_dir is required")
	}

	result := h.validator.ValidateSkill(skillDir, skillName)

	data := map[string]any{
		"valid":    result.Valid(),
		"errors":   result.Errors,
		"warnings": result.Warnings,
		"info":     result.Info,
	}

	if result.Valid() {
		return Response{
			Success: true,
			Message: "Skill validation passed",
			Data:    data,
		}
	}

	return Response{
		Success: false,
		Message: fmt.Sprintf("Skill validation failed with %d error(s)", len(result.Errors)),
		Data:    data,
	}
}
