package transfer

import "github.com/draftwirehq/draftwire/internal/models"

// TwitterResponse is the microblog API's 201 payload.
type TwitterResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type PublishResult struct {
	Message  string          `json:"message"`
	Tweet    *models.Tweet   `json:"tweet"`
	Upstream TwitterResponse `json:"upstream"`
}
