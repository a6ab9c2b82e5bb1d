package fs

import (
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
)

// File permissions
const (
	DefaultDirPermissions  = 0o755
	DefaultFilePermissions = 0o644
)

// Storage mirrors manifest paths under the root of a billy filesystem
type Storage struct {
	fs billy.Filesystem
}

// New wraps an existing billy filesystem
func New(fs billy.Filesystem) *Storage {
	return &Storage{fs: fs}
}

// NewOS returns a Storage rooted at dir on the local disk
func NewOS(dir string) *Storage {
	return New(osfs.New(dir))
}

// NewMemory returns an in-memory Storage
func NewMemory() *Storage {
	return New(memfs.New())
}

// Root returns the root path of the underlying filesystem
func (s *Storage) Root() string {
	return s.fs.Root()
}

// destination converts a manifest path to a filesystem path
func destination(p string) string {
	return filepath.FromSlash(path.Clean(p))
}

// Exists reports whether a file or directory already occupies the destination of p
func (s *Storage) Exists(p string) (bool, error) {
	dst := destination(p)
	_, err := s.fs.Stat(dst)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, goerr.Wrap(err, "failed to stat destination",
			goerr.T(types.ErrTagIO), goerr.V("path", dst))
	}
}

// EnsureDirectories creates every missing ancestor directory of the destination of p
func (s *Storage) EnsureDirectories(p string) error {
	dir := filepath.Dir(destination(p))
	if dir == "." {
		return nil
	}
	if err := s.fs.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return goerr.Wrap(err, "failed to create parent directories",
			goerr.T(types.ErrTagIO), goerr.V("dir", dir))
	}
	return nil
}

// Write creates or truncates the destination of p and writes content
func (s *Storage) Write(p string, content []byte) error {
	dst := destination(p)
	if err := util.WriteFile(s.fs, dst, content, DefaultFilePermissions); err != nil {
		return goerr.Wrap(err, "failed to write file",
			goerr.T(types.ErrTagIO), goerr.V("path", dst), goerr.V("size", len(content)))
	}
	return nil
}
