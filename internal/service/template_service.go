package service

import (
	"context"
	"fmt"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/draftwirehq/draftwire/internal/repository"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/google/uuid"
)

type TemplateService interface {
	Create(ctx context.Context, req *transfer.TemplateRequest) (*models.NotificationTemplate, error)
	Get(ctx context.Context, id uuid.UUID) (*models.NotificationTemplate, error)
	List(ctx context.Context) ([]*models.NotificationTemplate, error)
	Update(ctx context.Context, id uuid.UUID, req *transfer.TemplateRequest) (*models.NotificationTemplate, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type templateService struct {
	tr repository.TemplateRepository
}

func NewTemplateService(tr repository.TemplateRepository) TemplateService {
	return &templateService{tr: tr}
}

func validateTemplate(req *transfer.TemplateRequest) error {
	if req.Title == "" || req.Body == "" {
		return apperr.ValidationRejected("title and body are required")
	}
	return nil
}

func (s *templateService) Create(ctx context.Context, req *transfer.TemplateRequest) (*models.NotificationTemplate, error) {
	if err := validateTemplate(req); err != nil {
		return nil, err
	}

	tpl := &models.NotificationTemplate{
		Icon:    req.Icon,
		Title:   req.Title,
		Body:    req.Body,
		Excerpt: req.Excerpt,
	}

	id, err := s.tr.Create(ctx, tpl)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating template: %w", err)
	}
	tpl.ID = id

	return tpl, nil
}

func (s *templateService) Get(ctx context.Context, id uuid.UUID) (*models.NotificationTemplate, error) {
	tpl, exists, err := s.tr.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading template: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("template not found")
	}
	return tpl, nil
}

func (s *templateService) List(ctx context.Context) ([]*models.NotificationTemplate, error) {
	templates, err := s.tr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	return templates, nil
}

func (s *templateService) Update(ctx context.Context, id uuid.UUID, req *transfer.TemplateRequest) (*models.NotificationTemplate, error) {
	if err := validateTemplate(req); err != nil {
		return nil, err
	}

	tpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tpl.Icon = req.Icon
	tpl.Title = req.Title
	tpl.Body = req.Body
	tpl.Excerpt = req.Excerpt

	if err := s.tr.Update(ctx, tpl); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating template: %w", err)
	}
	return tpl, nil
}

func (s *templateService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.tr.Remove(ctx, id); err != nil {
		return fmt.Errorf("error removing template: %w", err)
	}
	return nil
}
