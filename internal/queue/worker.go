package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func (q *Queue) HandlePublishDraftTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishDraftPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return q.PublishDraft(ctx, payload.DraftID)
}

// PublishDraft runs the pipeline as a system principal. A draft that was
// deleted or already published since scheduling is a no-op, which is what
// makes duplicate enqueues harmless.
func (q *Queue) PublishDraft(ctx context.Context, draftID uuid.UUID) error {
	draft, exists, err := q.dr.GetByID(ctx, draftID)
	if err != nil {
		return err
	}
	if !exists || draft.IsPublished {
		return nil
	}

	system := &transfer.Principal{IsSuperuser: true}
	if _, err := q.ps.Publish(ctx, draft.ID, system); err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindConflict, apperr.KindNotFound:
			return nil
		case apperr.KindValidationRejected, apperr.KindPermanentUpstream:
			// Retrying the task cannot fix these.
			log.Printf("scheduled publish for draft %s failed permanently: %v", draft.ID, err)
			return nil
		}
		return err
	}

	log.Printf("scheduled draft %s published", draft.ID)
	return nil
}
