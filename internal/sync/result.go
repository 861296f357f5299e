package sync

import (
	"fmt"
	"strings"
)

// SkippedFile records a file that was not copied and why.
type SkippedFile struct {
	// Path is the source path that was skipped.
	Path string

	// Reason explains why the file was skipped.
	Reason string
}

// BackupRecord pairs an overwritten target file with the backup made of it.
type BackupRecord struct {
	// Original is the target path that was about to be overwritten.
	Original string

	// Backup is the path the previous content was saved to.
	Backup string
}

// Result contains the complete outcome of a sync operation.
// Lists preserve the order files were processed in.
type Result struct {
	// CopiedFiles holds the target paths written. In dry-run mode each
	// entry carries a "[DRY RUN]" prefix instead of being written.
	CopiedFiles []string

	// SkippedFiles holds files that were not copied, with reasons.
	SkippedFiles []SkippedFile

	// Backups holds backups created for overwritten target files.
	Backups []BackupRecord

	// Errors holds per-file failure messages. Errors do not abort the
	// remaining files.
	Errors []string

	// DryRun indicates no filesystem writes were performed.
	DryRun bool
}

// Success returns true if no errors occurred.
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}

// TotalProcessed returns the total number of files considered.
func (r *Result) TotalProcessed() int {
	return len(r.CopiedFiles) + len(r.SkippedFiles) + len(r.Errors)
}

// addCopied records a copied target path.
func (r *Result) addCopied(path string) {
	r.CopiedFiles = append(r.CopiedFiles, path)
}

// addSkipped records a skipped file with its reason.
func (r *Result) addSkipped(path, reason string) {
	r.SkippedFiles = append(r.SkippedFiles, SkippedFile{Path: path, Reason: reason})
}

// addBackup records a backup of an overwritten target file.
func (r *Result) addBackup(original, backup string) {
	r.Backups = append(r.Backups, BackupRecord{Original: original, Backup: backup})
}

// addError records a per-file failure message.
func (r *Result) addError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	var sb strings.Builder

	if r.DryRun {
		sb.WriteString("Dry run - no changes made\n")
	}

	sb.WriteString(fmt.Sprintf("  Copied:  %d\n", len(r.CopiedFiles)))
	sb.WriteString(fmt.Sprintf("  Skipped: %d\n", len(r.SkippedFiles)))
	sb.WriteString(fmt.Sprintf("  Backups: %d\n", len(r.Backups)))
	sb.WriteString(fmt.Sprintf("  Errors:  %d\n", len(r.Errors)))

	if len(r.SkippedFiles) > 0 {
		sb.WriteString("\nSkipped:\n")
		for _, s := range r.SkippedFiles {
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", s.Path, s.Reason))
		}
	}

	if !r.Success() {
		sb.WriteString("\nErrors:\n")
		for _, e := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", e))
		}
	}

	return sb.String()
}
