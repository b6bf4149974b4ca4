// Package storage defines the journal file-system abstraction.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// FileInfo is a lightweight representation returned by list operations.
type FileInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for journal file operations. All paths are
// relative to the journal root.
type Provider interface {
	// Exists reports whether a file exists at path.
	Exists(path string) bool
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// EnsureDir creates the directory at path if it does not exist.
	EnsureDir(path string) error
	// List walks dir and returns metadata for every .md file under it.
	List(dir string) ([]FileInfo, error)
}

// Sum returns the hex-encoded SHA-256 checksum of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
