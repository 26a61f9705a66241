package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/google/uuid"
)

type TemplateRepository interface {
	Create(ctx context.Context, tpl *models.NotificationTemplate) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.NotificationTemplate, bool, error)
	List(ctx context.Context) ([]*models.NotificationTemplate, error)
	Update(ctx context.Context, tpl *models.NotificationTemplate) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// Create inserts a template. The title is unique; duplicates map to
// Conflict, the same pattern as duplicate subscription endpoints.
func (r *templateRepository) Create(ctx context.Context, tpl *models.NotificationTemplate) (uuid.UUID, error) {
	query := `
		INSERT INTO notification_templates (id, icon, title, body, excerpt)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query, tpl.ID, tpl.Icon, tpl.Title, tpl.Body, tpl.Excerpt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, apperr.FromPG(err, "template title already exists")
	}

	return id, nil
}

func (r *templateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.NotificationTemplate, bool, error) {
	var tpl models.NotificationTemplate
	query := `SELECT id, icon, title, body, excerpt, created_at FROM notification_templates WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tpl.ID, &tpl.Icon, &tpl.Title, &tpl.Body, &tpl.Excerpt, &tpl.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &tpl, true, nil
}

func (r *templateRepository) List(ctx context.Context) ([]*models.NotificationTemplate, error) {
	query := `SELECT id, icon, title, body, excerpt, created_at FROM notification_templates ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var templates []*models.NotificationTemplate
	for rows.Next() {
		var tpl models.NotificationTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Icon, &tpl.Title, &tpl.Body, &tpl.Excerpt, &tpl.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		templates = append(templates, &tpl)
	}
	return templates, rows.Err()
}

func (r *templateRepository) Update(ctx context.Context, tpl *models.NotificationTemplate) error {
	query := `
		UPDATE notification_templates
		SET icon = $1,
			title = $2,
			body = $3,
			excerpt = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, tpl.Icon, tpl.Title, tpl.Body, tpl.Excerpt, tpl.ID)
	if err != nil {
		slog.Info(err.Error())
		return apperr.FromPG(err, "template title already exists")
	}
	return nil
}

func (r *templateRepository) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notification_templates WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
