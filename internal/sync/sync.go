// Package sync copies configured skill files from a source tree to a
// target tree, with optional timestamped backups of overwritten files
// and a dry-run mode that writes nothing.
package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauern/skillkit/internal/config"
	"github.com/klauern/skillkit/internal/logging"
)

// Options controls a single sync invocation.
type Options struct {
	// DryRun reports what would be copied without writing anything.
	DryRun bool

	// Include restricts the sync to these source-relative paths.
	// Nil means all files matched by the configured patterns.
	Include []string

	// OnFile is invoked once per processed file, for progress reporting.
	OnFile func(path string)
}

// Engine copies skill files between trees according to the configured
// sync patterns.
type Engine struct {
	patterns      []string
	backupEnabled bool
	backupSuffix  string
}

// NewEngine creates a sync engine from configuration.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		patterns:      cfg.Sync.FilesToSync,
		backupEnabled: cfg.Sync.BackupEnabled,
		backupSuffix:  cfg.Sync.BackupSuffix,
	}
}

// Sync copies the configured patterns from sourceDir to targetDir.
// Both directories must exist; otherwise a single error is recorded and
// no copying is attempted. Per-file failures are collected in the result
// and do not stop the remaining files.
func (e *Engine) Sync(sourceDir, targetDir, skillName string, opts Options) *Result {
	defer logging.Timer("sync")()

	result := &Result{DryRun: opts.DryRun}

	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		result.addError(fmt.Sprintf("Source directory does not exist: %s", sourceDir))
		return result
	}
	if info, err := os.Stat(targetDir); err != nil || !info.IsDir() {
		result.addError(fmt.Sprintf("Target directory does not exist: %s", targetDir))
		return result
	}

	logging.Info("syncing skill files",
		logging.Skill(skillName),
		logging.Path(sourceDir),
		logging.Count(len(e.patterns)),
	)

	include := includeSet(opts.Include)

	for _, pattern := range e.patterns {
		resolved := resolvePattern(pattern, skillName)

		if strings.HasSuffix(resolved, "/") {
			e.syncDir(sourceDir, targetDir, strings.TrimSuffix(resolved, "/"), include, opts, result)
		} else {
			e.syncFile(sourceDir, targetDir, resolved, include, opts, result)
		}
	}

	return result
}

// syncFile copies a single source-relative path into the target tree.
func (e *Engine) syncFile(sourceDir, targetDir, relPath string, include map[string]bool, opts Options, result *Result) {
	src := filepath.Join(sourceDir, filepath.FromSlash(relPath))

	info, err := os.Stat(src)
	if err != nil || info.IsDir() {
		result.addSkipped(relPath, "source not found")
		return
	}

	if include != nil && !include[relPath] {
		result.addSkipped(relPath, "not selected")
		return
	}

	e.copyOne(src, filepath.Join(targetDir, filepath.FromSlash(relPath)), relPath, opts, result)
}

// syncDir recursively copies every file under a source-relative
// directory, preserving relative paths.
func (e *Engine) syncDir(sourceDir, targetDir, relDir string, include map[string]bool, opts Options, result *Result) {
	srcRoot := filepath.Join(sourceDir, filepath.FromSlash(relDir))

	info, err := os.Stat(srcRoot)
	if err != nil || !info.IsDir() {
		result.addSkipped(relDir+"/", "source not found")
		return
	}

	walkErr := filepath.Walk(srcRoot, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			result.addError(fmt.Sprintf("Failed to walk %s: %v", path, err))
			return nil
		}
		if fi.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(sourceDir, path)
		if relErr != nil {
			result.addError(fmt.Sprintf("Failed to resolve %s: %v", path, relErr))
			return nil
		}
		relPath := filepath.ToSlash(rel)

		if include != nil && !include[relPath] {
			result.addSkipped(relPath, "not selected")
			return nil
		}

		e.copyOne(path, filepath.Join(targetDir, rel), relPath, opts, result)
		return nil
	})
	if walkErr != nil {
		result.addError(fmt.Sprintf("Failed to walk %s: %v", srcRoot, walkErr))
	}
}

// copyOne copies one file, backing up an existing target first when
// backups are enabled. In dry-run mode nothing is written: the copy is
// recorded with a dry-run marker and the backup as a would-be path.
func (e *Engine) copyOne(src, dst, relPath string, opts Options, result *Result) {
	if opts.OnFile != nil {
		opts.OnFile(relPath)
	}

	targetExists := false
	if info, err := os.Stat(dst); err == nil && !info.IsDir() {
		targetExists = true
	}

	if opts.DryRun {
		if targetExists && e.backupEnabled {
			result.addBackup(dst, backupPath(dst, e.backupSuffix, time.Now()))
		}
		result.addCopied("[DRY RUN] " + dst)
		return
	}

	if targetExists && e.backupEnabled {
		// Backup failures are deliberately swallowed: the sync proceeds
		// without a backup record.
		if backup, err := createBackup(dst, e.backupSuffix); err == nil {
			result.addBackup(dst, backup)
		} else {
			logging.Warn("backup failed, continuing without backup",
				logging.Path(dst),
				logging.Err(err),
			)
		}
	}

	if err := copyFile(src, dst); err != nil {
		result.addError(fmt.Sprintf("Failed to copy %s: %v", relPath, err))
		return
	}

	result.addCopied(dst)
}

// ListFiles enumerates the source-relative paths the configured
// patterns would sync, without touching the target, in configured
// pattern order. Files under a directory pattern appear in lexical
// walk order. Patterns whose source path does not exist are silently
// omitted.
func (e *Engine) ListFiles(sourceDir, skillName string) []string {
	var files []string

	for _, pattern := range e.patterns {
		resolved := resolvePattern(pattern, skillName)

		if strings.HasSuffix(resolved, "/") {
			srcRoot := filepath.Join(sourceDir, filepath.FromSlash(strings.TrimSuffix(resolved, "/")))
			_ = filepath.Walk(srcRoot, func(path string, fi os.FileInfo, err error) error {
				if err != nil || fi.IsDir() {
					return nil
				}
				if rel, relErr := filepath.Rel(sourceDir, path); relErr == nil {
					files = append(files, filepath.ToSlash(rel))
				}
				return nil
			})
			continue
		}

		src := filepath.Join(sourceDir, filepath.FromSlash(resolved))
		if info, err := os.Stat(src); err == nil && !info.IsDir() {
			files = append(files, resolved)
		}
	}

	return files
}

// resolvePattern substitutes the skill name placeholder in a pattern.
func resolvePattern(pattern, skillName string) string {
	return strings.ReplaceAll(pattern, "{skill_name}", skillName)
}

// includeSet builds a lookup set from an include list; nil means all.
func includeSet(include []string) map[string]bool {
	if include == nil {
		return nil
	}
	set := make(map[string]bool, len(include))
	for _, p := range include {
		set[filepath.ToSlash(p)] = true
	}
	return set
}
