package service

import (
	"context"
	"testing"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCRUD(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	tpl, err := svc.Create(context.Background(), &transfer.TemplateRequest{
		Icon:    "bell.png",
		Title:   "weekly digest",
		Body:    "Here is what you missed",
		Excerpt: "what you missed",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tpl.ID)

	got, err := svc.Get(context.Background(), tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekly digest", got.Title)

	updated, err := svc.Update(context.Background(), tpl.ID, &transfer.TemplateRequest{
		Title: "weekly digest",
		Body:  "An updated body",
	})
	require.NoError(t, err)
	assert.Equal(t, "An updated body", updated.Body)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Remove(context.Background(), tpl.ID))

	_, err = svc.Get(context.Background(), tpl.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTemplateDuplicateTitle(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	_, err := svc.Create(context.Background(), &transfer.TemplateRequest{Title: "weekly digest", Body: "a"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &transfer.TemplateRequest{Title: "weekly digest", Body: "b"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestTemplateValidation(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	_, err := svc.Create(context.Background(), &transfer.TemplateRequest{Title: "no body"})
	assert.Equal(t, apperr.KindValidationRejected, apperr.KindOf(err))

	_, err = svc.Update(context.Background(), uuid.New(), &transfer.TemplateRequest{Body: "no title"})
	assert.Equal(t, apperr.KindValidationRejected, apperr.KindOf(err))
}
