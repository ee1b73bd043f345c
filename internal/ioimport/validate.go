package ioimport

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/gnames/gedgraph/pkg/family"
)

// extensions are accepted file extensions, compared case-insensitively.
var extensions = map[string]bool{
	".ged":    true,
	".gedcom": true,
}

// ValidateUpload checks the name and size of an uploaded file before
// anything is stored.
func ValidateUpload(filename string, size int64, maxSize int) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extensions[ext] {
		return family.InvalidParameterError(
			"file", "only .ged and .gedcom files are accepted",
		)
	}
	if size <= 0 {
		return family.InvalidParameterError("file", "file is empty")
	}
	if size > int64(maxSize) {
		return FileTooLargeError(filename, size, maxSize)
	}
	return nil
}

// fileHash is the hex SHA-256 of the content.
func fileHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
