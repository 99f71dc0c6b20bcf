package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSetsFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sets.json")
	if err := os.WriteFile(path, []byte(`[["a","b"],["c"]]`), 0o644); err != nil {
		t.Fatal(err)
	}

	sets, err := LoadSetsFile(path)
	if err != nil {
		t.Fatalf("LoadSetsFile() error = %v", err)
	}
	if len(sets) != 2 || len(sets[0]) != 2 || len(sets[1]) != 1 {
		t.Errorf("LoadSetsFile() = %v, want [[a b] [c]]", sets)
	}
}

func TestLoadSetsFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sets.yaml")
	content := "- [a, b]\n- [c]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sets, err := LoadSetsFile(path)
	if err != nil {
		t.Fatalf("LoadSetsFile() error = %v", err)
	}
	if len(sets) != 2 {
		t.Errorf("LoadSetsFile() = %v, want 2 sets", sets)
	}
}

func TestLoadSetsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("apple\npear\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("banana\n\ncherry\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "skip"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skip", "c.txt"), []byte("ignored\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sets, labels, err := LoadSetsDir(dir, []string{"*.txt"}, nil)
	if err != nil {
		t.Fatalf("LoadSetsDir() error = %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("LoadSetsDir() = %v sets, want 2", len(sets))
	}
	if labels[0] != "a.txt" || labels[1] != "b.txt" {
		t.Errorf("labels = %v, want [a.txt b.txt]", labels)
	}
	if len(sets[0]) != 2 {
		t.Errorf("sets[0] = %v, want 2 elements", sets[0])
	}
	if len(sets[1]) != 2 {
		t.Errorf("sets[1] = %v, want 2 non-blank elements", sets[1])
	}
}

func TestLoadSetsDirExcludes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "drop.txt"), []byte("y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sets, labels, err := LoadSetsDir(dir, []string{"*.txt"}, []string{"drop.txt"})
	if err != nil {
		t.Fatalf("LoadSetsDir() error = %v", err)
	}
	if len(sets) != 1 || labels[0] != "keep.txt" {
		t.Errorf("LoadSetsDir() = %v, %v, want only keep.txt", sets, labels)
	}
}
