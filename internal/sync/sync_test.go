package sync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauern/skillkit/internal/config"
	"github.com/klauern/skillkit/internal/util"
)

func newTestEngine() *Engine {
	cfg := config.Default()
	cfg.Sync.FilesToSync = []string{
		"skills/{skill_name}.md",
		".claude/commands/",
	}
	return NewEngine(cfg)
}

func setupSource(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	util.WriteFile(t, filepath.Join(src, "skills", "demo.md"), "# Demo skill\n")
	util.WriteFile(t, filepath.Join(src, ".claude", "commands", "run.md"), "run command\n")
	util.WriteFile(t, filepath.Join(src, ".claude", "commands", "test.md"), "test command\n")
	return src
}

func TestSync_CopiesConfiguredFiles(t *testing.T) {
	src := setupSource(t)
	dst := t.TempDir()

	result := newTestEngine().Sync(src, dst, "demo", Options{})

	if !result.Success() {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if len(result.CopiedFiles) != 3 {
		t.Errorf("expected 3 copied files, got %d: %v", len(result.CopiedFiles), result.CopiedFiles)
	}

	for _, rel := range []string{
		"skills/demo.md",
		".claude/commands/run.md",
		".claude/commands/test.md",
	} {
		if _, err := os.Stat(filepath.Join(dst, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s in target: %v", rel, err)
		}
	}
}

func TestSync_MissingSourceDir(t *testing.T) {
	result := newTestEngine().Sync(filepath.Join(t.TempDir(), "nope"), t.TempDir(), "demo", Options{})

	if result.Success() {
		t.Fatal("expected failure for missing source directory")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Source directory") {
		t.Errorf("expected single source-directory error, got %v", result.Errors)
	}
	if len(result.CopiedFiles) != 0 {
		t.Errorf("expected no copies, got %v", result.CopiedFiles)
	}
}

func TestSync_MissingTargetDir(t *testing.T) {
	src := setupSource(t)
	result := newTestEngine().Sync(src, filepath.Join(t.TempDir(), "nope"), "demo", Options{})

	if result.Success() {
		t.Fatal("expected failure for missing target directory")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Target directory") {
		t.Errorf("expected single target-directory error, got %v", result.Errors)
	}
}

func TestSync_SkipsMissingSourceFile(t *testing.T) {
	src := t.TempDir()
	util.WriteFile(t, filepath.Join(src, ".claude", "commands", "run.md"), "x")
	dst := t.TempDir()

	result := newTestEngine().Sync(src, dst, "demo", Options{})

	if !result.Success() {
		t.Fatalf("missing source file must not be an error: %v", result.Errors)
	}
	if len(result.SkippedFiles) != 1 {
		t.Fatalf("expected 1 skipped file, got %v", result.SkippedFiles)
	}
	if result.SkippedFiles[0].Reason != "source not found" {
		t.Errorf("unexpected skip reason: %q", result.SkippedFiles[0].Reason)
	}
}

func TestSync_BackupOnOverwrite(t *testing.T) {
	src := setupSource(t)
	dst := t.TempDir()
	target := filepath.Join(dst, "skills", "demo.md")
	util.WriteFile(t, target, "old content\n")

	result := newTestEngine().Sync(src, dst, "demo", Options{})

	if !result.Success() {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if len(result.Backups) != 1 {
		t.Fatalf("expected exactly 1 backup, got %v", result.Backups)
	}

	rec := result.Backups[0]
	if rec.Original != target {
		t.Errorf("backup original = %q, want %q", rec.Original, target)
	}
	if filepath.Ext(rec.Backup) != ".md" {
		t.Errorf("backup must keep original extension, got %q", rec.Backup)
	}
	if !strings.Contains(rec.Backup, ".backup.") {
		t.Errorf("backup name must embed suffix, got %q", rec.Backup)
	}

	// Pre-overwrite content must be recoverable from the backup.
	saved, err := os.ReadFile(rec.Backup)
	if err != nil {
		t.Fatalf("backup file not readable: %v", err)
	}
	if string(saved) != "old content\n" {
		t.Errorf("backup content = %q, want original content", saved)
	}

	// And the target holds the new content.
	current, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("target not readable: %v", err)
	}
	if string(current) != "# Demo skill\n" {
		t.Errorf("target content = %q, want source content", current)
	}
}

func TestSync_BackupDisabled(t *testing.T) {
	src := setupSource(t)
	dst := t.TempDir()
	util.WriteFile(t, filepath.Join(dst, "skills", "demo.md"), "old")

	cfg := config.Default()
	cfg.Sync.BackupEnabled = false
	cfg.Sync.FilesToSync = []string{"skills/{skill_name}.md"}

	result := NewEngine(cfg).Sync(src, dst, "demo", Options{})

	if !result.Success() {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if len(result.Backups) != 0 {
		t.Errorf("expected no backups, got %v", result.Backups)
	}
}

func TestSync_DryRunWritesNothing(t *testing.T) {
	src := setupSource(t)
	dst := t.TempDir()
	target := filepath.Join(dst, "skills", "demo.md")
	util.WriteFile(t, target, "old content\n")

	engine := newTestEngine()
	dry := engine.Sync(src, dst, "demo", Options{DryRun: true})

	if !dry.DryRun {
		t.Error("result must report dry-run mode")
	}
	for _, copied := range dry.CopiedFiles {
		if !strings.HasPrefix(copied, "[DRY RUN] ") {
			t.Errorf("dry-run entry missing marker: %q", copied)
		}
	}
	if len(dry.Backups) != 1 {
		t.Errorf("dry run must still record the would-be backup, got %v", dry.Backups)
	}
	if _, err := os.Stat(dry.Backups[0].Backup); !os.IsNotExist(err) {
		t.Error("dry run must not write backup files")
	}

	// Target tree untouched
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("target not readable: %v", err)
	}
	if string(content) != "old content\n" {
		t.Errorf("dry run modified the target: %q", content)
	}
	if _, err := os.Stat(filepath.Join(dst, ".claude")); !os.IsNotExist(err) {
		t.Error("dry run must not create target directories")
	}

	// Same skipped set and copy count as a real sync
	real := engine.Sync(src, dst, "demo", Options{})
	if len(real.CopiedFiles) != len(dry.CopiedFiles) {
		t.Errorf("dry run copied count %d != real %d", len(dry.CopiedFiles), len(real.CopiedFiles))
	}
	if len(real.SkippedFiles) != len(dry.SkippedFiles) {
		t.Errorf("dry run skipped count %d != real %d", len(dry.SkippedFiles), len(real.SkippedFiles))
	}
}

func TestSync_IncludeFilter(t *testing.T) {
	src := setupSource(t)
	dst := t.TempDir()

	result := newTestEngine().Sync(src, dst, "demo", Options{
		Include: []string{"skills/demo.md"},
	})

	if !result.Success() {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if len(result.CopiedFiles) != 1 {
		t.Errorf("expected 1 copied file, got %v", result.CopiedFiles)
	}
	if _, err := os.Stat(filepath.Join(dst, ".claude", "commands", "run.md")); !os.IsNotExist(err) {
		t.Error("unselected files must not be copied")
	}

	var reasons []string
	for _, s := range result.SkippedFiles {
		reasons = append(reasons, s.Reason)
	}
	for _, reason := range reasons {
		if reason != "not selected" {
			t.Errorf("unexpected skip reason %q", reason)
		}
	}
}

func TestSync_OnFileHook(t *testing.T) {
	src := setupSource(t)
	dst := t.TempDir()

	var seen []string
	result := newTestEngine().Sync(src, dst, "demo", Options{
		OnFile: func(path string) { seen = append(seen, path) },
	})

	if !result.Success() {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if len(seen) != len(result.CopiedFiles) {
		t.Errorf("hook fired %d times for %d copies", len(seen), len(result.CopiedFiles))
	}
}

func TestSync_PreservesMetadata(t *testing.T) {
	src := setupSource(t)
	dst := t.TempDir()

	script := filepath.Join(src, "skills", "demo.md")
	if err := os.Chmod(script, 0o755); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	past := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	if err := os.Chtimes(script, past, past); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	result := newTestEngine().Sync(src, dst, "demo", Options{})
	if !result.Success() {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}

	info, err := os.Stat(filepath.Join(dst, "skills", "demo.md"))
	if err != nil {
		t.Fatalf("target not found: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("permissions not preserved: %v", info.Mode().Perm())
	}
	if !info.ModTime().Equal(past) {
		t.Errorf("modification time not preserved: got %v, want %v", info.ModTime(), past)
	}
}

func TestListFiles_PatternOrder(t *testing.T) {
	src := setupSource(t)
	engine := newTestEngine()

	files := engine.ListFiles(src, "demo")

	// Configured pattern order, not lexical: the skill definition
	// pattern comes before the commands directory pattern.
	want := []string{
		"skills/demo.md",
		".claude/commands/run.md",
		".claude/commands/test.md",
	}
	if len(files) != len(want) {
		t.Fatalf("ListFiles = %v, want %v", files, want)
	}
	for i, f := range files {
		if f != want[i] {
			t.Errorf("ListFiles[%d] = %q, want %q", i, f, want[i])
		}
	}
}

func TestListFiles_MissingPatternsOmitted(t *testing.T) {
	src := t.TempDir()
	files := newTestEngine().ListFiles(src, "demo")
	if len(files) != 0 {
		t.Errorf("expected empty list for empty source, got %v", files)
	}
}

func TestBackupPath(t *testing.T) {
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		target string
		suffix string
		want   string
	}{
		{"/tmp/skill.md", ".backup", "/tmp/skill.backup.20240131_120000.md"},
		{"/tmp/install.sh", ".bak", "/tmp/install.bak.20240131_120000.sh"},
		{"/tmp/noext", ".backup", "/tmp/noext.backup.20240131_120000"},
	}

	for _, tt := range tests {
		if got := backupPath(tt.target, tt.suffix, now); got != tt.want {
			t.Errorf("backupPath(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}
