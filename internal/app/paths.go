package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	appDirName   = "healthy"
	dbFileName   = "healthy.db"
	backupPrefix = "healthy-lifestyle-backup-"
)

func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}

// BackupFileName is the export file name for the given local date.
func BackupFileName(now time.Time) string {
	return backupPrefix + now.Format("2006-01-02") + ".json"
}
