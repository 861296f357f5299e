package sync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauern/skillkit/internal/logging"
)

// copyFile copies a single file from src to dst, preserving permissions
// and modification time. The destination directory is created if needed.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %q: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("failed to create destination directory for %q: %w", dst, err)
	}

	// #nosec G304 - src is from trusted skill paths
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	// Create destination file with same permissions
	// #nosec G302 G304 - preserving source permissions, dst is from trusted paths
	dstFile, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("failed to create destination %q: %w", dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("failed to copy content to %q: %w", dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination %q: %w", dst, err)
	}

	// Preserve the source permissions for pre-existing destinations too.
	if err := os.Chmod(dst, srcInfo.Mode()); err != nil {
		return fmt.Errorf("failed to set permissions on %q: %w", dst, err)
	}
	if err := os.Chtimes(dst, time.Now(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("failed to set timestamps on %q: %w", dst, err)
	}

	logging.Debug("copied file", logging.Path(src))

	return nil
}

// backupPath derives the timestamped backup name for a target file:
// the original stem, the configured suffix, a timestamp, and the
// original extension. "skill.md" with suffix ".backup" becomes
// "skill.backup.20240131_120000.md".
func backupPath(target, suffix string, now time.Time) string {
	ext := filepath.Ext(target)
	stem := target[:len(target)-len(ext)]
	return stem + suffix + "." + now.Format("20060102_150405") + ext
}

// createBackup copies the target file to its timestamped backup path.
// The caller treats failures as "no backup created".
func createBackup(target, suffix string) (string, error) {
	backup := backupPath(target, suffix, time.Now())
	if err := copyFile(target, backup); err != nil {
		return "", err
	}

	logging.Debug("created backup",
		logging.Path(target),
		logging.Operation("backup"),
	)

	return backup, nil
}
