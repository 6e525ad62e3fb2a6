package block

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Priyanshu23/duraarchive/internal/record"
)

func writeSampleBlock(t *testing.T, dir string, n int) {
	t.Helper()
	w := NewWriter(dir, n)
	if err := w.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := w.StoreFile("/src/a", record.FileTypeRegular, []byte("hello")); err != nil {
		t.Fatalf("StoreFile: %v", err)
	}
	if err := w.StoreFile("/src/dir", record.FileTypeDirectory, nil); err != nil {
		t.Fatalf("StoreFile: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestReaderVerifyCleanBlock(t *testing.T) {
	dir := t.TempDir()
	writeSampleBlock(t, dir, 0)

	r, err := OpenReader(dir, 0)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer r.Close()

	findings, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("got %d findings on a clean block, want 0: %v", len(findings), findings)
	}

	content, err := r.ReadEntryContent(r.Index().Files[0])
	if err != nil {
		t.Fatalf("ReadEntryContent: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("ReadEntryContent = %q, want %q", content, "hello")
	}
}

func TestReaderVerifyDetectsFlippedBit(t *testing.T) {
	dir := t.TempDir()
	writeSampleBlock(t, dir, 0)

	dataPath := filepath.Join(dir, "d000000.d")
	data, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	data[0] ^= 0xff
	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := OpenReader(dir, 0)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer r.Close()

	findings, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(findings) == 0 {
		t.Fatal("expected at least one finding after flipping a bit")
	}
}

func TestOpenReaderMissingIndex(t *testing.T) {
	dir := t.TempDir()
	if _, err := OpenReader(dir, 0); err == nil {
		t.Fatal("expected an error opening a reader for a nonexistent block")
	}
}
