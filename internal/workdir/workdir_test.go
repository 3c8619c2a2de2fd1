package workdir_test

import (
	"os"
	"path/filepath"
	"testing"

	"revoice/internal/workdir"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestPathCarriesJobPrefix(t *testing.T) {
	m := workdir.NewManager(filepath.Join(t.TempDir(), "scratch"), nil)
	got := m.Path("abc123", "extracted.wav")
	if filepath.Base(got) != "abc123_extracted.wav" {
		t.Fatalf("Path = %q", got)
	}
	if filepath.Dir(got) != m.Root() {
		t.Fatalf("Path outside root: %q", got)
	}
}

func TestReclaimRemovesOnlyOwnFiles(t *testing.T) {
	m := workdir.NewManager(t.TempDir(), nil)
	if err := m.Ensure(); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	writeFile(t, m.Path("job-a", "extracted.wav"))
	writeFile(t, m.Path("job-a", "seg_0.mp3"))
	writeFile(t, m.Path("job-b", "extracted.wav"))

	if err := m.Reclaim("job-a"); err != nil {
		t.Fatalf("Reclaim failed: %v", err)
	}

	if _, err := os.Stat(m.Path("job-a", "extracted.wav")); !os.IsNotExist(err) {
		t.Fatal("job-a scratch file survived reclaim")
	}
	if _, err := os.Stat(m.Path("job-a", "seg_0.mp3")); !os.IsNotExist(err) {
		t.Fatal("job-a scratch file survived reclaim")
	}
	if _, err := os.Stat(m.Path("job-b", "extracted.wav")); err != nil {
		t.Fatalf("job-b scratch file removed: %v", err)
	}
}

func TestReclaimIsIdempotent(t *testing.T) {
	m := workdir.NewManager(t.TempDir(), nil)
	if err := m.Ensure(); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	writeFile(t, m.Path("job-a", "extracted.wav"))

	for i := 0; i < 3; i++ {
		if err := m.Reclaim("job-a"); err != nil {
			t.Fatalf("Reclaim pass %d failed: %v", i+1, err)
		}
	}
}

func TestReclaimMissingRoot(t *testing.T) {
	m := workdir.NewManager(filepath.Join(t.TempDir(), "never-created"), nil)
	if err := m.Reclaim("job-a"); err != nil {
		t.Fatalf("Reclaim on missing root failed: %v", err)
	}
}

func TestReclaimAll(t *testing.T) {
	m := workdir.NewManager(t.TempDir(), nil)
	if err := m.Ensure(); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	writeFile(t, m.Path("job-a", "extracted.wav"))
	writeFile(t, m.Path("job-b", "dubbed.wav"))

	if err := m.ReclaimAll(); err != nil {
		t.Fatalf("ReclaimAll failed: %v", err)
	}
	entries, err := os.ReadDir(m.Root())
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty scratch dir, found %d entries", len(entries))
	}
}
