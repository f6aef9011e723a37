package fileops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "player.gd")

	if err := AtomicWriteFile(dest, []byte("extends Node\n"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() failed: %v", err)
	}
	if err := AtomicWriteFile(dest, []byte("extends Node2D\n"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() overwrite failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "extends Node2D\n" {
		t.Errorf("content = %q, want overwritten content", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the destination file, found %d entries", len(entries))
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dest)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0644 {
			t.Errorf("mode = %o, want 0644", info.Mode().Perm())
		}
	}
}

func TestAtomicWriteFile_MissingDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "player.gd")

	if err := AtomicWriteFile(dest, []byte("x"), 0644); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}

func TestEnsureDirectoryExists(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "c")

	for i := 0; i < 2; i++ {
		if err := EnsureDirectoryExists(target); err != nil {
			t.Fatalf("EnsureDirectoryExists() call %d failed: %v", i, err)
		}
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected directory at %s", target)
	}
}
