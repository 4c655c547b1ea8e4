package models

import (
	"time"

	"gorm.io/datatypes"
)

// ErrorCode is a machine-readable status for a persisted RenderLog,
// mirroring the typed-kind hierarchy internal/object raises at evaluation
// time without depending on that package here.
type ErrorCode string

const (
	ErrorCodeNone      ErrorCode = ""
	ErrorCodeParse     ErrorCode = "parse-error"
	ErrorCodeScript    ErrorCode = "script-error"
	ErrorCodeIO        ErrorCode = "io-error"
	ErrorCodeOther     ErrorCode = "error"
)

// RenderSession tracks one invocation of the CLI across however many
// template files it renders in that run.
type RenderSession struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	StartedAt   time.Time `gorm:"autoCreateTime"`
	EndedAt     *time.Time
	RootPath    string `gorm:"type:varchar(500)"`
	FilesCount  int    `gorm:"default:0"`
	ErrorsCount int    `gorm:"default:0"`
}

// RenderLog records one rendered (or failed) template within a session.
type RenderLog struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	SessionID string `gorm:"type:varchar(36);index"`

	SourcePath string `gorm:"type:varchar(500);not null"`
	OutputPath string `gorm:"type:varchar(500)"`

	// Bindings records the top-level scope variable names supplied for
	// this render, for later inspection/debugging — not their values,
	// which may be arbitrarily large or sensitive.
	Bindings datatypes.JSON `gorm:"type:jsonb"`

	Status    ErrorCode `gorm:"type:varchar(20);default:''"`
	ErrorText string    `gorm:"type:text"`

	DurationMS int64     `gorm:"column:duration_ms"`
	RenderedAt time.Time `gorm:"autoCreateTime"`
}

func (RenderSession) TableName() string { return "render_sessions" }
func (RenderLog) TableName() string     { return "render_logs" }
