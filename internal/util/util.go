package util

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// --- Filesystem Helpers ---

// WriteFileAtomic writes data to a file atomically via a temp file + rename.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	defer func() { _ = tmp.Close() }()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ExpandGlobs expands a list of paths, resolving glob patterns among them.
func ExpandGlobs(files []string) []string {
	var out []string
	for _, f := range files {
		if strings.ContainsAny(f, "*?[") {
			matches, _ := filepath.Glob(f)
			out = append(out, matches...)
		} else {
			out = append(out, f)
		}
	}
	return out
}

// --- Hashing Helpers ---

// SHA1Hex computes the SHA1 hash of a byte slice and returns it as a hex string.
func SHA1Hex(b []byte) string {
	h := sha1.Sum(b)
	return hex.EncodeToString(h[:])
}

// SHA1FileHex computes the SHA1 hash of a file's content.
func SHA1FileHex(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return SHA1Hex(b)
}

// --- Diff Helpers ---

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
)

// UnifiedDiff generates a colored or plain unified diff string between two
// render outputs, for the `diff` subcommand.
func UnifiedDiff(orig, mod, filename string, context int, color bool) string {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(orig),
		B:        difflib.SplitLines(mod),
		FromFile: filename,
		ToFile:   filename + " (new)",
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}

	if !color {
		return text
	}

	var sb strings.Builder
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if i == len(lines)-1 && l == "" {
			continue
		}
		switch {
		case strings.HasPrefix(l, "+"):
			sb.WriteString(colorGreen + l + colorReset + "\n")
		case strings.HasPrefix(l, "-"):
			sb.WriteString(colorRed + l + colorReset + "\n")
		case strings.HasPrefix(l, "@"):
			sb.WriteString(colorCyan + l + colorReset + "\n")
		default:
			sb.WriteString(l + "\n")
		}
	}
	return sb.String()
}
