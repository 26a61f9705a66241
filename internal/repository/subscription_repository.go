package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.PushSubscription) (uuid.UUID, error)
	GetByEndpoint(ctx context.Context, endpoint string) (*models.PushSubscription, bool, error)
	ListByGroup(ctx context.Context, group string) ([]*models.PushSubscription, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.PushSubscription, error)
	RemoveByEndpoint(ctx context.Context, endpoint string) (bool, error)
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = `id, endpoint, p256dh, auth, group_tag, created_at`

// Create inserts a subscription. The endpoint carries a unique constraint;
// a duplicate surfaces as Conflict, never as an upsert.
func (r *subscriptionRepository) Create(ctx context.Context, sub *models.PushSubscription) (uuid.UUID, error) {
	query := `
		INSERT INTO push_subscriptions (id, endpoint, p256dh, auth, group_tag)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query, sub.ID, sub.Endpoint, sub.P256dh, sub.Auth, sub.Group).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, apperr.FromPG(err, "subscription already exists")
	}

	return id, nil
}

func (r *subscriptionRepository) GetByEndpoint(ctx context.Context, endpoint string) (*models.PushSubscription, bool, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM push_subscriptions WHERE endpoint = $1`

	var sub models.PushSubscription
	err := r.db.QueryRowContext(ctx, query, endpoint).Scan(&sub.ID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.Group, &sub.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &sub, true, nil
}

func (r *subscriptionRepository) ListByGroup(ctx context.Context, group string) ([]*models.PushSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM push_subscriptions WHERE group_tag = $1`
	return r.querySubscriptions(ctx, query, group)
}

func (r *subscriptionRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.PushSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM push_subscriptions WHERE id = ANY($1)`

	pgIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		pgIDs = append(pgIDs, id.String())
	}
	return r.querySubscriptions(ctx, query, pq.Array(pgIDs))
}

func (r *subscriptionRepository) RemoveByEndpoint(ctx context.Context, endpoint string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *subscriptionRepository) querySubscriptions(ctx context.Context, query string, args ...any) ([]*models.PushSubscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var subs []*models.PushSubscription
	for rows.Next() {
		var sub models.PushSubscription
		if err := rows.Scan(&sub.ID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.Group, &sub.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}
