package transfer

import "github.com/google/uuid"

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type SubscriptionRequest struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
	Group    *string          `json:"group"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

// NotificationRequest targets either a group tag or an explicit set of
// subscription ids. Exactly one must be present.
type NotificationRequest struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Group *string     `json:"group"`
	Users []uuid.UUID `json:"users"`
}

type TemplateRequest struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Excerpt string `json:"excerpt"`
}
