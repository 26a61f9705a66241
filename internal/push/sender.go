package push

import (
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	config "github.com/draftwirehq/draftwire/configs"
	"github.com/draftwirehq/draftwire/internal/models"
)

// Payload is the JSON body delivered to the browser's service worker.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
}

// Sender delivers one web-push message to one subscriber. Implementations
// make a single best-effort attempt; retrying is the caller's decision.
type Sender interface {
	Send(sub *models.PushSubscription, payload Payload) error
}

type webpushSender struct {
	cfg config.Vapid
}

func NewSender(cfg config.Vapid) Sender {
	return &webpushSender{cfg: cfg}
}

func (s *webpushSender) Send(sub *models.PushSubscription, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.cfg.Subscriber,
		VAPIDPublicKey:  s.cfg.PublicKey,
		VAPIDPrivateKey: s.cfg.PrivateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
