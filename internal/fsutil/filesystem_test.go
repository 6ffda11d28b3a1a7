package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, fsys FileSystem, name, data string) error {
	t.Helper()
	w, err := fsys.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func readFile(t *testing.T, fsys FileSystem, name string) (string, error) {
	t.Helper()
	r, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	return string(data), err
}

func TestOSFileSystem_CreateRenameOpen(t *testing.T) {
	osfs := OSFileSystem{}
	dir := t.TempDir()
	tmp := filepath.Join(dir, "save.tmp")
	final := filepath.Join(dir, "save.stga")

	if err := writeFile(t, osfs, tmp, "1\nP\n"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := osfs.Rename(tmp, final); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := osfs.Open(tmp); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected temp file to be gone after rename, got %v", err)
	}

	data, err := readFile(t, osfs, final)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if data != "1\nP\n" {
		t.Errorf("expected %q, got %q", "1\nP\n", data)
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	testData := []byte("hello, world")
	if err := mfs.WriteFile("/test.txt", testData, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := mfs.ReadFile("/test.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestMemoryFileSystem_CreateAndOpen(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/created.txt")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("created content")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := mfs.Open("/created.txt")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "created content" {
		t.Errorf("expected 'created content', got %q", data)
	}
}

func TestMemoryFileSystem_RenameAndRemove(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if err := mfs.WriteFile("/a", []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := mfs.Rename("/a", "/b"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if mfs.Exists("/a") || !mfs.Exists("/b") {
		t.Fatalf("expected /a moved to /b, files: %v", mfs.Names())
	}

	if err := mfs.Remove("/b"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := mfs.Remove("/b"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist removing twice, got %v", err)
	}
}

func TestMemoryFileSystem_FailWrites(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.FailWrites = true

	if err := mfs.WriteFile("/x", []byte("x"), 0644); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected ErrPermission, got %v", err)
	}
	if _, err := mfs.Create("/x"); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected ErrPermission, got %v", err)
	}
	if mfs.Exists("/x") {
		t.Error("failed write must not create a file")
	}
}

func TestMemoryFileSystem_OpenMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if _, err := mfs.Open("/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
