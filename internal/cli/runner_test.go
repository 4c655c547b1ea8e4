package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oxhq/veneer/internal/model"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	cfg := &model.Config{DSN: filepath.Join(t.TempDir(), "veneer.db")}
	r, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestRunner_Run_RendersAndWritesOutput(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(root, "hello.veneer"), "Hello, #{1 + 1}!")

	r := newTestRunner(t)
	cfg := &model.Config{
		Root:    root,
		Include: []string{"**/*.veneer"},
		OutDir:  out,
	}

	summary, results, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.FilesRendered != 1 || summary.FilesFailed != 0 {
		t.Fatalf("summary = %+v, want 1 rendered, 0 failed", summary)
	}
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("results = %+v", results)
	}

	got, err := os.ReadFile(results[0].OutputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != "Hello, 2!" {
		t.Errorf("output = %q, want %q", got, "Hello, 2!")
	}
}

func TestRunner_Run_UsesBindingsSidecar(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(root, "greet.veneer"), "Hi, #{@name}!")
	writeFile(t, filepath.Join(root, "greet.veneer.json"), `{"name": "Ada"}`)

	r := newTestRunner(t)
	cfg := &model.Config{
		Root:    root,
		Include: []string{"**/*.veneer"},
		OutDir:  out,
	}

	_, results, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("results = %+v", results)
	}
	got, _ := os.ReadFile(results[0].OutputPath)
	if string(got) != "Hi, Ada!" {
		t.Errorf("output = %q, want %q", got, "Hi, Ada!")
	}
}

func TestRunner_Run_RecordsScriptErrorInResult(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.veneer"), "#{1 + @missing.no_such_method}")

	r := newTestRunner(t)
	cfg := &model.Config{
		Root:    root,
		Include: []string{"**/*.veneer"},
		OutDir:  out,
	}

	summary, results, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.FilesFailed != 1 {
		t.Fatalf("summary = %+v, want 1 failed", summary)
	}
	if results[0].Success {
		t.Fatalf("expected failure, got success: %+v", results[0])
	}
	if strings.TrimSpace(results[0].Error) == "" {
		t.Errorf("expected a non-empty error message")
	}
}

func TestRunner_Run_NoTemplatesFound(t *testing.T) {
	root := t.TempDir()
	r := newTestRunner(t)
	cfg := &model.Config{Root: root, Include: []string{"**/*.veneer"}, OutDir: t.TempDir()}

	_, _, err := r.Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected an error when no templates match")
	}
}
