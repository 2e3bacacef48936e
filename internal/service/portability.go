package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/store"
)

type ExportInfo struct {
	Path      string `json:"path"`
	Checksum  string `json:"checksum"`
	SizeBytes int64  `json:"size_bytes"`
}

// ExportState renders the whole document as indented JSON.
func ExportState(st model.State) ([]byte, error) {
	b, err := store.Encode(st, true)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// WriteExport writes the backup file plus a .sha256 sidecar.
func WriteExport(st model.State, outPath string) (ExportInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return ExportInfo{}, fmt.Errorf("export output path is required")
	}
	b, err := ExportState(st)
	if err != nil {
		return ExportInfo{}, err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ExportInfo{}, fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return ExportInfo{}, fmt.Errorf("write export: %w", err)
	}
	checksum := checksumHex(b)
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return ExportInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	return ExportInfo{Path: outPath, Checksum: checksum, SizeBytes: int64(len(b))}, nil
}

// ImportState parses a backup and merges it over the default document.
// The caller replaces its state only when this succeeds.
func ImportState(raw []byte) (model.State, error) {
	st, err := store.Decode(raw)
	if err != nil {
		return model.State{}, invalidf("import file is not a valid backup: %v", err)
	}
	return st, nil
}

// ReadImport loads a backup from disk, checking the .sha256 sidecar when
// one exists next to it.
func ReadImport(path string) (model.State, error) {
	if strings.TrimSpace(path) == "" {
		return model.State{}, fmt.Errorf("import path is required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return model.State{}, fmt.Errorf("read import file: %w", err)
	}
	if expected, err := os.ReadFile(path + ".sha256"); err == nil {
		if strings.TrimSpace(string(expected)) != checksumHex(b) {
			return model.State{}, invalidf("backup checksum mismatch")
		}
	}
	return ImportState(b)
}

func checksumHex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
