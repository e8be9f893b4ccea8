package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Local stores files in a directory served by the HTTP server under
// urlPrefix
type Local struct {
	dir       string
	urlPrefix string
}

// NewLocal creates the directory if needed
func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create upload directory", goerr.V("dir", dir))
	}
	return &Local{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}, nil
}

// Dir returns the directory files are written to
func (x *Local) Dir() string {
	return x.dir
}

func (x *Local) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", goerr.New("invalid stored file name", goerr.V("name", name))
	}

	path := filepath.Join(x.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create upload file", goerr.V("path", path))
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", goerr.Wrap(err, "failed to write upload file", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", goerr.Wrap(err, "failed to close upload file", goerr.V("path", path))
	}

	return x.urlPrefix + "/" + name, nil
}

func (x *Local) Delete(ctx context.Context, name string) error {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return goerr.New("invalid stored file name", goerr.V("name", name))
	}

	path := filepath.Join(x.dir, name)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return goerr.Wrap(err, "failed to delete upload file", goerr.V("path", path))
	}
	return nil
}
