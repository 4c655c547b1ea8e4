package core

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestFileWalker_FastScan_IncludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.veneer"), "a")
	writeTestFile(t, filepath.Join(dir, "b.veneer"), "b")
	writeTestFile(t, filepath.Join(dir, "c.txt"), "c")
	writeTestFile(t, filepath.Join(dir, "nested", "d.veneer"), "d")

	walker := NewFileWalker()
	files, err := walker.FastScan(context.Background(), FileScope{
		Path:    dir,
		Include: []string{"**/*.veneer"},
	})
	if err != nil {
		t.Fatalf("FastScan: %v", err)
	}
	sort.Strings(files)
	if len(files) != 3 {
		t.Fatalf("FastScan found %d files, want 3: %v", len(files), files)
	}
}

func TestFileWalker_FastScan_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.veneer"), "a")
	writeTestFile(t, filepath.Join(dir, "vendor", "b.veneer"), "b")

	walker := NewFileWalker()
	files, err := walker.FastScan(context.Background(), FileScope{
		Path:    dir,
		Include: []string{"**/*.veneer"},
		Exclude: []string{"**/vendor/**"},
	})
	if err != nil {
		t.Fatalf("FastScan: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("FastScan found %d files, want 1: %v", len(files), files)
	}
}

func TestFileWalker_Walk_RespectsMaxDepth(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "top.veneer"), "x")
	writeTestFile(t, filepath.Join(dir, "a", "b", "deep.veneer"), "x")

	walker := NewFileWalker()
	files, err := walker.FastScan(context.Background(), FileScope{
		Path:     dir,
		Include:  []string{"**/*.veneer"},
		MaxDepth: 1,
	})
	if err != nil {
		t.Fatalf("FastScan: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("FastScan with MaxDepth=1 found %d files, want 1: %v", len(files), files)
	}
}

func TestFileWalker_ValidateScope_RejectsMissingPath(t *testing.T) {
	walker := NewFileWalker()
	_, err := walker.Walk(context.Background(), FileScope{})
	if err == nil {
		t.Fatal("expected an error for an empty scope path")
	}
}

func TestFileWalker_ValidateScope_RejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeTestFile(t, file, "x")

	walker := NewFileWalker()
	_, err := walker.Walk(context.Background(), FileScope{Path: file})
	if err == nil {
		t.Fatal("expected an error when scope.Path is a file, not a directory")
	}
}
