package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PushSubscription struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Endpoint  string         `db:"endpoint" json:"endpoint"`
	P256dh    string         `db:"p256dh" json:"p256dh"`
	Auth      string         `db:"auth" json:"auth"`
	Group     sql.NullString `db:"group_tag" json:"group"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

type NotificationTemplate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Icon      string    `db:"icon" json:"icon"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Excerpt   string    `db:"excerpt" json:"excerpt"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
