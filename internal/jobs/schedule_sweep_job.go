package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/draftwirehq/draftwire/internal/queue"
	"github.com/draftwirehq/draftwire/internal/repository"
	"github.com/hibiken/asynq"
)

// ScheduleSweepJob re-enqueues due scheduled drafts that never got a publish
// task, e.g. drafts created right before a crash. Enqueuing a draft twice is
// harmless since the worker skips published drafts.
type ScheduleSweepJob struct {
	dr     repository.DraftRepository
	client *asynq.Client
}

func NewScheduleSweepJob(dr repository.DraftRepository, client *asynq.Client) *ScheduleSweepJob {
	return &ScheduleSweepJob{
		dr:     dr,
		client: client,
	}
}

func (j *ScheduleSweepJob) SweepDueDrafts() {
	ctx := context.Background()

	drafts, err := j.dr.ListDueScheduled(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, draft := range drafts {
		err := queue.EnqueueDraft(j.client, queue.PublishDraftPayload{DraftID: draft.ID}, 0)
		if err != nil {
			slog.Info("Unable to enqueue due draft", "draft_id", draft.ID, "error", err)
		}
	}
}
