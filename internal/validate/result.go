package validate

import (
	"fmt"
	"strings"
)

// Result accumulates validation findings in the order they were checked.
// Validity is determined solely by the absence of errors.
type Result struct {
	// Errors contains failures that make the skill invalid.
	Errors []string

	// Warnings contains non-fatal issues worth surfacing.
	Warnings []string

	// Info contains informational entries for passing checks.
	Info []string
}

// AddError adds an error message to the result.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddWarning adds a warning message to the result.
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddInfo adds an informational message to the result.
func (r *Result) AddInfo(msg string) {
	r.Info = append(r.Info, msg)
}

// Valid returns true if validation produced no errors.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Summary returns a human-readable summary of the validation result.
func (r *Result) Summary() string {
	var sb strings.Builder

	if r.Valid() {
		if len(r.Warnings) == 0 {
			sb.WriteString("All validations passed\n")
		} else {
			sb.WriteString(fmt.Sprintf("Validation passed with %d warning(s)\n", len(r.Warnings)))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Validation failed with %d error(s)\n", len(r.Errors)))
	}

	if len(r.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, e := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", e))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", w))
		}
	}

	return sb.String()
}
