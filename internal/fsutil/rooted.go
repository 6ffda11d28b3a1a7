package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrEscapesRoot is returned for names that are absolute or climb out of a
// RootedFileSystem's directory.
var ErrEscapesRoot = errors.New("path escapes save directory")

// RootedFileSystem confines every operation to one directory. Names are
// resolved relative to it; absolute names, ".." components and symlinks that
// lead outside are refused.
type RootedFileSystem struct {
	dir  string
	root *os.Root
}

// NewRootedFileSystem creates dir if needed and opens it as the root.
func NewRootedFileSystem(dir string) (*RootedFileSystem, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &RootedFileSystem{dir: dir, root: root}, nil
}

func (r *RootedFileSystem) Dir() string {
	return r.dir
}

func (r *RootedFileSystem) Close() error {
	return r.root.Close()
}

func local(op, name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", &fs.PathError{Op: op, Path: name, Err: ErrEscapesRoot}
	}
	return filepath.Clean(name), nil
}

func (r *RootedFileSystem) Open(name string) (io.ReadCloser, error) {
	name, err := local("open", name)
	if err != nil {
		return nil, err
	}
	return r.root.Open(name)
}

func (r *RootedFileSystem) Create(name string) (io.WriteCloser, error) {
	name, err := local("create", name)
	if err != nil {
		return nil, err
	}
	return r.root.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o640)
}

// Rename checks both names against the root before renaming. os.Root has no
// rename of its own in this Go version, so the parent directories are
// resolved through the root first to refuse symlinked escapes.
func (r *RootedFileSystem) Rename(oldName, newName string) error {
	oldName, err := local("rename", oldName)
	if err != nil {
		return err
	}
	newName, err = local("rename", newName)
	if err != nil {
		return err
	}
	for _, name := range []string{oldName, newName} {
		if _, err := r.root.Stat(filepath.Dir(name)); err != nil {
			return err
		}
	}
	if info, err := r.root.Lstat(oldName); err != nil {
		return err
	} else if !info.Mode().IsRegular() {
		return &os.LinkError{Op: "rename", Old: oldName, New: newName, Err: fs.ErrInvalid}
	}
	return os.Rename(filepath.Join(r.dir, oldName), filepath.Join(r.dir, newName))
}

func (r *RootedFileSystem) Remove(name string) error {
	name, err := local("remove", name)
	if err != nil {
		return err
	}
	return r.root.Remove(name)
}
