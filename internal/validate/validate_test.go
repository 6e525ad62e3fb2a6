package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Priyanshu23/duraarchive/internal/archive"
	"github.com/Priyanshu23/duraarchive/internal/ingest"
)

func backupOneFile(t *testing.T, root, content string) string {
	t.Helper()

	a, err := archive.Create(root)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	srcDir := t.TempDir()
	srcFile := filepath.Join(srcDir, "hello.txt")
	if err := os.WriteFile(srcFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := ingest.New(ingest.WithHostname("testhost"))
	bandNum, err := p.Run(a, []string{srcFile})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return bandNum
}

func TestArchiveCleanIsOK(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arc")
	backupOneFile(t, root, "hello, dura")

	report, err := Archive(root)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if !report.OK() {
		t.Fatalf("expected a clean report, got findings: %v", report.Findings)
	}
}

func TestArchiveDetectsFlippedBit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arc")
	bandNum := backupOneFile(t, root, "hello, dura")

	dataPath := filepath.Join(root, "b"+bandNum, "d000000.d")
	data, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	data[0] ^= 0xff
	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	report, err := Archive(root)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if report.OK() {
		t.Fatal("expected findings after corrupting a block's data file")
	}
}

func TestArchiveDetectsBadMagic(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arc")
	if _, err := archive.Create(root); err != nil {
		t.Fatalf("Create: %v", err)
	}

	headerPath := filepath.Join(root, "DURA-ARCHIVE")
	if err := os.WriteFile(headerPath, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Archive(root); err == nil {
		t.Fatal("expected Archive to fail outright on a corrupt header")
	}
}

func TestArchiveRunIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arc")
	backupOneFile(t, root, "hello, dura")

	first, err := Archive(root)
	if err != nil {
		t.Fatalf("Archive (first): %v", err)
	}
	second, err := Archive(root)
	if err != nil {
		t.Fatalf("Archive (second): %v", err)
	}
	if len(first.Findings) != len(second.Findings) {
		t.Fatalf("repeated validation runs disagree: %d vs %d findings", len(first.Findings), len(second.Findings))
	}
}
