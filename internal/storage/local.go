package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const localSaveMaxAttempts = 5

// Local stores artifacts as plain files in a single directory, the same
// directory the server serves statically at /uploads.
type Local struct {
	dir string
}

var _ Store = (*Local)(nil)

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create upload dir %s", dir)
	}
	return &Local{dir: dir}, nil
}

func (s *Local) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// O_EXCL detects a same-nanosecond collision; retry with a fresh timestamp.
	var f *os.File
	var name string
	for attempt := 0; ; attempt++ {
		name = GenerateName(originalFilename)
		var err error
		f, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if os.IsExist(err) && attempt < localSaveMaxAttempts {
			continue
		}
		return "", errors.Wrapf(err, "failed to create artifact %s", name)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", errors.Wrapf(err, "failed to write artifact %s", name)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", errors.Wrapf(err, "failed to close artifact %s", name)
	}

	return name, nil
}

func (s *Local) Delete(ctx context.Context, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// filenames are opaque to callers but must never escape the upload dir
	if filepath.Base(filename) != filename {
		return errors.Errorf("invalid artifact name %q", filename)
	}

	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		return errors.Wrapf(err, "failed to delete artifact %s", filename)
	}
	return nil
}
