package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/google/uuid"
)

type DraftRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Draft, bool, error)
	Create(ctx context.Context, tx *sql.Tx, draft *models.Draft) (uuid.UUID, error)
	Update(ctx context.Context, draft *models.Draft) error
	MarkPublished(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
	ListByUserID(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*models.Draft, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	List(ctx context.Context, skip, limit int) ([]*models.Draft, error)
	Count(ctx context.Context) (int64, error)
	ListDueScheduled(ctx context.Context, due time.Time) ([]*models.Draft, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type draftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) DraftRepository {
	return &draftRepository{db: db}
}

const draftColumns = `id, user_id, title, content, image_url, link_url, platform, scheduled_time, is_published, created_at, updated_at`

func scanDraft(row interface{ Scan(...any) error }) (*models.Draft, error) {
	var d models.Draft
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Content, &d.ImageURL, &d.LinkURL, &d.Platform, &d.ScheduledTime, &d.IsPublished, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *draftRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Draft, bool, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id = $1`
	draft, err := scanDraft(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return draft, true, nil
}

func (r *draftRepository) Create(ctx context.Context, tx *sql.Tx, draft *models.Draft) (uuid.UUID, error) {
	query := `
		INSERT INTO drafts (id, user_id, title, content, image_url, link_url, platform, scheduled_time, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}

	var id uuid.UUID
	var err error

	args := []any{draft.ID, draft.UserID, draft.Title, draft.Content, draft.ImageURL, draft.LinkURL, draft.Platform, draft.ScheduledTime, draft.IsPublished}
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, err
	}

	return id, nil
}

func (r *draftRepository) Update(ctx context.Context, draft *models.Draft) error {
	query := `
		UPDATE drafts
		SET title = $1,
			content = $2,
			image_url = $3,
			link_url = $4,
			platform = $5,
			scheduled_time = $6,
			updated_at = $7
		WHERE id = $8
	`
	_, err := r.db.ExecContext(ctx, query, draft.Title, draft.Content, draft.ImageURL, draft.LinkURL, draft.Platform, draft.ScheduledTime, time.Now(), draft.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// MarkPublished flips is_published. The flag is monotonic: nothing in this
// codebase ever resets it.
func (r *draftRepository) MarkPublished(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	query := `
		UPDATE drafts
		SET is_published = TRUE,
			updated_at = $1
		WHERE id = $2
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, time.Now(), id)
	} else {
		_, err = r.db.ExecContext(ctx, query, time.Now(), id)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *draftRepository) ListByUserID(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE user_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
	return r.queryDrafts(ctx, query, userID, skip, limit)
}

func (r *draftRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drafts WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *draftRepository) List(ctx context.Context, skip, limit int) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	return r.queryDrafts(ctx, query, skip, limit)
}

func (r *draftRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drafts`).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// ListDueScheduled returns unpublished drafts whose scheduled time has
// passed. Used by the sweeper to recover tasks lost before they reached the
// queue.
func (r *draftRepository) ListDueScheduled(ctx context.Context, due time.Time) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE is_published = FALSE AND scheduled_time IS NOT NULL AND scheduled_time <= $1`
	return r.queryDrafts(ctx, query, due)
}

func (r *draftRepository) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *draftRepository) queryDrafts(ctx context.Context, query string, args ...any) ([]*models.Draft, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var drafts []*models.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}
