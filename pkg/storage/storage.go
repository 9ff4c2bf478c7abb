// Package storage stores uploaded cover images behind a small Disk
// interface. Two drivers: "local" (filesystem, served under /storage) and
// "s3" (AWS S3 or any S3-compatible store).
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/groovecrate/vinylstore/config"
)

// Disk is the driver interface for uploaded files.
type Disk interface {
	// Put writes the content of r to path, creating parents as needed.
	Put(ctx context.Context, path string, r io.Reader) error

	// Open returns a reader for the file. Caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes the file. Removing a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

// New builds the configured disk.
func New(cfg *config.Config) (Disk, error) {
	switch cfg.StorageDisk {
	case "", "local":
		return NewLocal(cfg.StorageLocalRoot, cfg.StorageURL)
	case "s3":
		return NewS3(context.Background(), S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.S3URL,
		})
	default:
		return nil, fmt.Errorf("storage: unsupported disk %q (supported: local, s3)", cfg.StorageDisk)
	}
}
