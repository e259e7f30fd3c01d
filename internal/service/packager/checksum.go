package packager

import (
	"crypto"
	_ "crypto/sha256" // Registers crypto.SHA256.
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// checksumFunction hashes the finished package for the release notes.
const checksumFunction = crypto.SHA256

var errHashUnavailable = errors.New("hash function is not linked into the binary")

// FileChecksum returns the lowercase hex SHA-256 of a file.
func FileChecksum(path string) (string, error) {
	if !checksumFunction.Available() {
		return "", fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	hasher := checksumFunction.New()
	if _, err = io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("calculate checksum: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
