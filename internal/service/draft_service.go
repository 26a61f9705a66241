package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/draftwirehq/draftwire/internal/repository"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/google/uuid"
)

type DraftService interface {
	Create(ctx context.Context, principal *transfer.Principal, dc *transfer.DraftCreation) (*models.Draft, error)
	Get(ctx context.Context, principal *transfer.Principal, id uuid.UUID) (*models.Draft, error)
	List(ctx context.Context, principal *transfer.Principal, skip, limit int) (*transfer.DraftsList, error)
	Update(ctx context.Context, principal *transfer.Principal, id uuid.UUID, du *transfer.DraftUpdate) (*models.Draft, error)
	Remove(ctx context.Context, principal *transfer.Principal, id uuid.UUID) error
}

type draftService struct {
	dr repository.DraftRepository
}

func NewDraftService(dr repository.DraftRepository) DraftService {
	return &draftService{dr: dr}
}

const scheduledTimeLayout = "2006-01-02T15:04"

func parseScheduledTime(value *string) (sql.NullTime, error) {
	if value == nil || *value == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(scheduledTimeLayout, *value)
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("invalid scheduled time format: %w", err)
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func nullString(value *string) sql.NullString {
	if value == nil || *value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func (s *draftService) Create(ctx context.Context, principal *transfer.Principal, dc *transfer.DraftCreation) (*models.Draft, error) {
	if dc.Title == "" {
		return nil, apperr.ValidationRejected("title cannot be empty")
	}
	if dc.Content == "" {
		return nil, apperr.ValidationRejected("content cannot be empty")
	}

	scheduledTime, err := parseScheduledTime(dc.ScheduledTime)
	if err != nil {
		slog.Info(err.Error())
		return nil, apperr.ValidationRejected(err.Error())
	}

	draft := &models.Draft{
		UserID:        principal.ID,
		Title:         dc.Title,
		Content:       dc.Content,
		ImageURL:      nullString(dc.ImageURL),
		LinkURL:       nullString(dc.LinkURL),
		Platform:      nullString(dc.Platform),
		ScheduledTime: scheduledTime,
	}

	id, err := s.dr.Create(ctx, nil, draft)
	if err != nil {
		return nil, fmt.Errorf("error creating draft: %w", err)
	}
	draft.ID = id
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = draft.CreatedAt

	return draft, nil
}

// load fetches a draft and enforces ownership. Superusers see everything.
func (s *draftService) load(ctx context.Context, principal *transfer.Principal, id uuid.UUID) (*models.Draft, error) {
	draft, exists, err := s.dr.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading draft: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("draft not found")
	}
	if !principal.IsSuperuser && draft.UserID != principal.ID {
		return nil, apperr.Forbidden("not enough permissions")
	}
	return draft, nil
}

func (s *draftService) Get(ctx context.Context, principal *transfer.Principal, id uuid.UUID) (*models.Draft, error) {
	return s.load(ctx, principal, id)
}

func (s *draftService) List(ctx context.Context, principal *transfer.Principal, skip, limit int) (*transfer.DraftsList, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	var (
		drafts []*models.Draft
		count  int64
		err    error
	)
	if principal.IsSuperuser {
		count, err = s.dr.Count(ctx)
		if err == nil {
			drafts, err = s.dr.List(ctx, skip, limit)
		}
	} else {
		count, err = s.dr.CountByUserID(ctx, principal.ID)
		if err == nil {
			drafts, err = s.dr.ListByUserID(ctx, principal.ID, skip, limit)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error listing drafts: %w", err)
	}

	return &transfer.DraftsList{Data: drafts, Count: count}, nil
}

func (s *draftService) Update(ctx context.Context, principal *transfer.Principal, id uuid.UUID, du *transfer.DraftUpdate) (*models.Draft, error) {
	draft, err := s.load(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if du.Title != nil {
		if *du.Title == "" {
			return nil, apperr.ValidationRejected("title cannot be empty")
		}
		draft.Title = *du.Title
	}
	if du.Content != nil {
		if *du.Content == "" {
			return nil, apperr.ValidationRejected("content cannot be empty")
		}
		draft.Content = *du.Content
	}
	if du.ImageURL != nil {
		draft.ImageURL = nullString(du.ImageURL)
	}
	if du.LinkURL != nil {
		draft.LinkURL = nullString(du.LinkURL)
	}
	if du.Platform != nil {
		draft.Platform = nullString(du.Platform)
	}
	if du.ScheduledTime != nil {
		scheduledTime, err := parseScheduledTime(du.ScheduledTime)
		if err != nil {
			slog.Info(err.Error())
			return nil, apperr.ValidationRejected(err.Error())
		}
		draft.ScheduledTime = scheduledTime
	}

	if err := s.dr.Update(ctx, draft); err != nil {
		return nil, fmt.Errorf("error updating draft: %w", err)
	}
	draft.UpdatedAt = time.Now()

	return draft, nil
}

func (s *draftService) Remove(ctx context.Context, principal *transfer.Principal, id uuid.UUID) error {
	if _, err := s.load(ctx, principal, id); err != nil {
		return err
	}

	if err := s.dr.Remove(ctx, id); err != nil {
		return fmt.Errorf("error removing draft: %w", err)
	}
	return nil
}
