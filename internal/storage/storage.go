// Package storage implements the artifact store: durable byte storage for
// uploaded logo/image/video blobs, keyed by generated filenames. Writes are
// append-only; the only other operation is an explicit delete. Reads happen
// out of band (static file serving or a CDN in front of the bucket).
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"time"
)

type Store interface {
	// Save writes the blob under a name generated from the upload time and the
	// extension of originalFilename, and returns that name.
	Save(ctx context.Context, originalFilename string, r io.Reader) (string, error)

	// Delete removes the named blob. Deleting a name that does not exist is
	// reported as an error; callers on best-effort paths log and move on.
	Delete(ctx context.Context, filename string) error
}

// GenerateName derives an artifact name from a high-resolution timestamp and
// the original file's extension. Nanosecond resolution makes collisions
// improbable; backends still disambiguate on collision where they can detect
// one.
func GenerateName(originalFilename string) string {
	ext := filepath.Ext(filepath.Base(originalFilename))
	return strconv.FormatInt(time.Now().UnixNano(), 10) + ext
}
