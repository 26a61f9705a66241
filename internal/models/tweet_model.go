package models

import (
	"time"

	"github.com/google/uuid"
)

// Tweet is the immutable record of a successfully published draft. Rows are
// inserted exactly once per publish and never updated.
type Tweet struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	TwitterID string    `db:"twitter_id" json:"twitter_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
