package db

import (
	"path/filepath"
	"testing"

	"github.com/oxhq/veneer/models"
)

func TestConnect_MigratesRenderModels(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "veneer.db")
	conn, err := Connect(dsn, false)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	defer sqlDB.Close()

	if !conn.Migrator().HasTable(&models.RenderSession{}) {
		t.Error("expected render_sessions table to exist after migration")
	}
	if !conn.Migrator().HasTable(&models.RenderLog{}) {
		t.Error("expected render_logs table to exist after migration")
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"./local.db", false},
		{"/abs/path/to.db", false},
		{"http://example.com/db", true},
		{"https://example.com/db", true},
		{"libsql://example.turso.io", true},
	}
	for _, tt := range tests {
		if got := isURL(tt.dsn); got != tt.want {
			t.Errorf("isURL(%q) = %v, want %v", tt.dsn, got, tt.want)
		}
	}
}
