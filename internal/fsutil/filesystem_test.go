package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}

	if fs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_CreateAndRead(t *testing.T) {
	fsys := OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "plots", "sky")
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	path := filepath.Join(dir, "out.svg")
	w, err := fsys.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("<svg/>")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("ReadFile = %q, want %q", data, "<svg/>")
	}
}

func TestMemoryFileSystem_WriteVisibleOnClose(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("sky.png")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	w.Write([]byte("part"))
	w.Write([]byte("ial"))

	if data, _ := mfs.ReadFile("sky.png"); len(data) != 0 {
		t.Errorf("expected empty file before Close, got %q", data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err := mfs.ReadFile("./sky.png")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "partial" {
		t.Errorf("ReadFile = %q, want %q", data, "partial")
	}

	if _, err := w.Write([]byte("x")); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("Write after Close: got %v, want fs.ErrClosed", err)
	}
	if err := w.Close(); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("second Close: got %v, want fs.ErrClosed", err)
	}
}

func TestMemoryFileSystem_Dirs(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.Create("/out/a/sky.svg"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Create without parent: got %v, want fs.ErrNotExist", err)
	}
	if err := mfs.MkdirAll("/out/a", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if !mfs.Exists("/out") || !mfs.Exists("/out/a") {
		t.Error("expected /out and /out/a to exist")
	}

	w, err := mfs.Create("/out/a/sky.svg")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	w.Close()

	if err := mfs.MkdirAll("/out/a/sky.svg/x", 0o755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("MkdirAll through a file: got %v, want fs.ErrExist", err)
	}
	if got, want := mfs.Files(), []string{"/out/a/sky.svg"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
}

func TestMemoryFileSystem_ReadMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if _, err := mfs.ReadFile("missing.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile missing: got %v, want fs.ErrNotExist", err)
	}
	if mfs.Exists("missing.png") {
		t.Error("expected missing.png to not exist")
	}
}
