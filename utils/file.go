package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SanitizeFilename keeps letters, digits, dashes, underscores and dots and
// replaces everything else with an underscore. Document ids are filenames,
// so they must stay free of path separators and BSON-hostile characters.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}

// SaveUploadWithTimestamp writes uploaded bytes into the upload directory
// with a timestamp suffix so repeated uploads of the same file never
// overwrite each other. Returns the destination path.
func SaveUploadWithTimestamp(name string, data []byte, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	originalName := SanitizeFilename(filepath.Base(name))
	ext := filepath.Ext(originalName)
	baseFileName := strings.TrimSuffix(originalName, ext)
	timestamp := time.Now().Unix()
	destFileName := fmt.Sprintf("%s_%d%s", baseFileName, timestamp, ext)
	destPath := filepath.Join(uploadDir, destFileName)

	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %v", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}
	return destPath, nil
}
