package queue

import (
	"github.com/draftwirehq/draftwire/internal/repository"
	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/google/uuid"
)

type Queue struct {
	dr repository.DraftRepository
	ps service.PublishService
}

func NewQueue(dr repository.DraftRepository, ps service.PublishService) *Queue {
	return &Queue{
		dr: dr,
		ps: ps,
	}
}

const TaskTypePublishDraft = "publish:draft"

type PublishDraftPayload struct {
	DraftID uuid.UUID `json:"draft_id"`
}
