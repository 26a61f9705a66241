package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/draftwirehq/draftwire/internal/push"
	"github.com/draftwirehq/draftwire/internal/repository"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/google/uuid"
)

type NotificationService interface {
	Subscribe(ctx context.Context, req *transfer.SubscriptionRequest) (uuid.UUID, error)
	Unsubscribe(ctx context.Context, endpoint string) error
	// Send resolves the target audience and dispatches deliveries on a
	// detached goroutine. A nil error means the batch was accepted, not
	// that every delivery succeeded.
	Send(ctx context.Context, req *transfer.NotificationRequest) (int, error)
}

type notificationService struct {
	sr     repository.SubscriptionRepository
	sender push.Sender
}

func NewNotificationService(sr repository.SubscriptionRepository, sender push.Sender) NotificationService {
	return &notificationService{sr: sr, sender: sender}
}

func (s *notificationService) Subscribe(ctx context.Context, req *transfer.SubscriptionRequest) (uuid.UUID, error) {
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		return uuid.Nil, apperr.ValidationRejected("endpoint and keys are required")
	}

	sub := &models.PushSubscription{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
		Group:    nullString(req.Group),
	}

	id, err := s.sr.Create(ctx, sub)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return uuid.Nil, err
		}
		return uuid.Nil, fmt.Errorf("error saving subscription: %w", err)
	}
	return id, nil
}

func (s *notificationService) Unsubscribe(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return apperr.ValidationRejected("endpoint is required")
	}

	removed, err := s.sr.RemoveByEndpoint(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("error removing subscription: %w", err)
	}
	if !removed {
		return apperr.NotFound("subscription not found")
	}
	return nil
}

func (s *notificationService) Send(ctx context.Context, req *transfer.NotificationRequest) (int, error) {
	hasGroup := req.Group != nil && *req.Group != ""
	hasUsers := len(req.Users) > 0

	if !hasGroup && !hasUsers {
		return 0, apperr.ValidationRejected("group or user ids must be specified")
	}
	if hasGroup && hasUsers {
		return 0, apperr.ValidationRejected("specify either a group or user ids, not both")
	}

	var (
		subs []*models.PushSubscription
		err  error
	)
	if hasGroup {
		subs, err = s.sr.ListByGroup(ctx, *req.Group)
	} else {
		subs, err = s.sr.ListByIDs(ctx, req.Users)
	}
	if err != nil {
		return 0, fmt.Errorf("error resolving subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return 0, apperr.NotFound("no subscriptions found for the target")
	}

	payload := push.Payload{Title: req.Title, Body: req.Body}

	// Dispatch is detached from the request cycle: the caller gets an
	// acknowledgment, delivery outcomes are only observable in the logs.
	go s.dispatch(subs, payload)

	return len(subs), nil
}

// dispatch makes one best-effort attempt per subscriber. A failed delivery
// (including one against a concurrently removed subscription) is recorded
// and never aborts the rest of the batch.
func (s *notificationService) dispatch(subs []*models.PushSubscription, payload push.Payload) {
	var failed []uuid.UUID
	for _, sub := range subs {
		if err := s.sender.Send(sub, payload); err != nil {
			slog.Warn("failed to send notification", "subscription_id", sub.ID, "error", err)
			failed = append(failed, sub.ID)
		}
	}

	if len(failed) > 0 {
		slog.Error("notification batch finished with failures", "total", len(subs), "failed", len(failed), "failed_ids", failed)
	} else {
		slog.Info("notification batch finished", "total", len(subs))
	}
}
