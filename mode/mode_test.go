package mode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/montrey/sift/store"
)

func TestReadLines(t *testing.T) {
	input := "firefox\nterminal\nfiles\n"
	m, err := ReadLines(strings.NewReader(input), "run")
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}

	if m.Count() != 3 {
		t.Fatalf("expected 3 candidates, got %d", m.Count())
	}
	if m.Searchable(1) != "terminal" || m.Display(1) != "terminal" {
		t.Errorf("candidate 1 = %q/%q, want terminal", m.Searchable(1), m.Display(1))
	}
	if m.Prompt() != "run" {
		t.Errorf("prompt = %q, want run", m.Prompt())
	}
}

func TestReadLinesEmpty(t *testing.T) {
	m, err := ReadLines(strings.NewReader(""), "run")
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("expected 0 candidates, got %d", m.Count())
	}
}

func TestFilesWalk(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "main.go"), "package main")
	mustWrite(t, filepath.Join(root, "docs", "readme.md"), "hi")
	mustWrite(t, filepath.Join(root, "build", "out.bin"), "bin")
	mustWrite(t, filepath.Join(root, ".hidden", "secret"), "no")
	mustWrite(t, filepath.Join(root, ".gitignore"), "build/\n")

	m, err := NewFiles(root)
	if err != nil {
		t.Fatalf("NewFiles failed: %v", err)
	}

	got := make(map[string]bool)
	for i := 0; i < m.Count(); i++ {
		got[m.Display(i)] = true
	}

	if !got["main.go"] || !got[filepath.Join("docs", "readme.md")] {
		t.Errorf("expected walked files present, got %v", got)
	}
	if got[filepath.Join("build", "out.bin")] {
		t.Error("gitignored file should be skipped")
	}
	if got[filepath.Join(".hidden", "secret")] {
		t.Error("hidden directory should be skipped")
	}
}

func TestRecent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := store.InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer db.Close()

	if err := store.RecordUse(db, "older"); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordUse(db, "newer"); err != nil {
		t.Fatal(err)
	}
	if err := store.AddPin(db, "pinned"); err != nil {
		t.Fatal(err)
	}

	m, err := NewRecent(db)
	if err != nil {
		t.Fatalf("NewRecent failed: %v", err)
	}

	if m.Count() != 3 {
		t.Fatalf("expected 3 entries, got %d", m.Count())
	}
	if m.Display(0) != "pinned" {
		t.Errorf("entry 0 = %q, want the pin first", m.Display(0))
	}

	// Same-second timestamps fall back to alphabetical order, so just
	// check membership of the two history entries.
	rest := map[string]bool{m.Display(1): true, m.Display(2): true}
	if !rest["older"] || !rest["newer"] {
		t.Errorf("history entries missing, got %v", rest)
	}

	if err := store.DeleteHistory(db, "older"); err != nil {
		t.Fatalf("DeleteHistory failed: %v", err)
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("expected 2 entries after delete, got %d", m.Count())
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
