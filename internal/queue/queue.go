package queue

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// EnqueueDraft schedules a publish task to fire after delay. Tasks are safe
// to enqueue more than once: the worker skips drafts that already published.
func EnqueueDraft(asynqClient *asynq.Client, payload PublishDraftPayload, delay time.Duration) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishDraft, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.ProcessIn(delay))
	if err != nil {
		return err
	}

	log.Printf("Publish task scheduled: %+v", payload)
	return nil
}
