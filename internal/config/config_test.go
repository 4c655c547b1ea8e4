package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("VENEER_DATABASE_URL")

	cfg, files, err := Load([]string{"--out", "./out"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "." {
		t.Errorf("Root = %q, want %q", cfg.Root, ".")
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "**/*.veneer" {
		t.Errorf("Include = %v, want [**/*.veneer]", cfg.Include)
	}
	if cfg.OutDir != "./out" {
		t.Errorf("OutDir = %q, want ./out", cfg.OutDir)
	}
	if cfg.DSN != "./veneer.db" {
		t.Errorf("DSN = %q, want ./veneer.db", cfg.DSN)
	}
	if len(files) != 0 {
		t.Errorf("expected no positional args, got %v", files)
	}
}

func TestLoad_RequiresOutUnlessStdout(t *testing.T) {
	_, _, err := Load([]string{"--root", "./templates"})
	if err == nil {
		t.Fatal("expected an error when --out is missing and --stdout is not set")
	}
}

func TestLoad_StdoutModeSkipsOutRequirement(t *testing.T) {
	cfg, _, err := Load([]string{"--stdout"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.StdoutMode {
		t.Error("expected StdoutMode to be true")
	}
}

func TestLoad_EnvironmentOverridesDSNDefault(t *testing.T) {
	os.Setenv("VENEER_DATABASE_URL", "libsql://example.turso.io")
	defer os.Unsetenv("VENEER_DATABASE_URL")

	cfg, _, err := Load([]string{"--stdout"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DSN != "libsql://example.turso.io" {
		t.Errorf("DSN = %q, want env override", cfg.DSN)
	}
}
