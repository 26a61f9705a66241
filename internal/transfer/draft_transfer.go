package transfer

import (
	"github.com/draftwirehq/draftwire/internal/models"
)

type DraftCreation struct {
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	ImageURL      *string `json:"image_url"`
	LinkURL       *string `json:"link_url"`
	Platform      *string `json:"platform"`
	ScheduledTime *string `json:"scheduled_time"`
}

// DraftUpdate carries a partial update; nil fields are left untouched.
type DraftUpdate struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	ImageURL      *string `json:"image_url"`
	LinkURL       *string `json:"link_url"`
	Platform      *string `json:"platform"`
	ScheduledTime *string `json:"scheduled_time"`
}

type DraftsList struct {
	Data  []*models.Draft `json:"data"`
	Count int64           `json:"count"`
}
