package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Draft struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	UserID        uuid.UUID      `db:"user_id" json:"user_id"`
	Title         string         `db:"title" json:"title"`
	Content       string         `db:"content" json:"content"`
	ImageURL      sql.NullString `db:"image_url" json:"image_url"`
	LinkURL       sql.NullString `db:"link_url" json:"link_url"`
	Platform      sql.NullString `db:"platform" json:"platform"`
	ScheduledTime sql.NullTime   `db:"scheduled_time" json:"scheduled_time"`
	IsPublished   bool           `db:"is_published" json:"is_published"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// MaxContentLength is the platform character limit enforced before any
// outbound call.
const MaxContentLength = 280
