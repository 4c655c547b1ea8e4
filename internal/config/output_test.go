package config

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/oxhq/veneer/internal/model"
)

func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	f()
	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	f()
	w.Close()
	os.Stderr = old
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestPrintResultCLI_Success(t *testing.T) {
	out := captureStdout(func() {
		PrintResultCLI(&model.Result{SourcePath: "a.veneer", Success: true}, &model.Config{})
	})
	if out != "✓ a.veneer\n" {
		t.Errorf("got %q", out)
	}
}

func TestPrintResultCLI_Failure(t *testing.T) {
	errOut := captureStderr(func() {
		PrintResultCLI(&model.Result{
			SourcePath: "a.veneer",
			Success:    false,
			Error:      "boom",
			ErrorCode:  model.ErrorCodeScript,
		}, &model.Config{})
	})
	if errOut == "" {
		t.Error("expected failure output on stderr")
	}
}

func TestPrintResultCLI_StdoutMode(t *testing.T) {
	out := captureStdout(func() {
		PrintResultCLI(&model.Result{
			SourcePath: "a.veneer",
			Success:    true,
			Output:     "<p>hi</p>",
		}, &model.Config{StdoutMode: true})
	})
	if out != "<p>hi</p>" {
		t.Errorf("got %q", out)
	}
}

func TestPrintSummary_SkipsInJSONMode(t *testing.T) {
	errOut := captureStderr(func() {
		PrintSummary(model.Summary{FilesRendered: 2}, &model.Config{JSONOutput: true})
	})
	if errOut != "" {
		t.Errorf("expected no output in JSON mode, got %q", errOut)
	}
}
