package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	config "github.com/draftwirehq/draftwire/configs"
	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/draftwirehq/draftwire/internal/repository"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/draftwirehq/draftwire/pkg/retry"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type PublishService interface {
	Publish(ctx context.Context, draftID uuid.UUID, principal *transfer.Principal) (*transfer.PublishResult, error)
}

type publishService struct {
	db     *sql.DB
	dr     repository.DraftRepository
	tr     repository.TweetRepository
	client *http.Client
	apiURL string
	policy retry.Policy
}

// NewPublishService wires the pipeline against the configured microblog
// endpoint. The outbound client carries the bearer token via oauth2's
// transport.
func NewPublishService(cfg config.Config, db *sql.DB, dr repository.DraftRepository, tr repository.TweetRepository) PublishService {
	client := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.TwitterBearer,
	}))
	client.Timeout = 30 * time.Second

	return &publishService{
		db:     db,
		dr:     dr,
		tr:     tr,
		client: client,
		apiURL: cfg.TwitterAPIURL,
		policy: retry.Policy{Retries: 2, Delay: 2 * time.Second, Backoff: 2},
	}
}

type tweetPayload struct {
	Text string `json:"text"`
}

// Publish runs the draft through the full pipeline: load, authorize,
// validate, post upstream with bounded backoff, then commit the published
// record and the draft flip in one transaction. Stored state changes only on
// the success path.
func (s *publishService) Publish(ctx context.Context, draftID uuid.UUID, principal *transfer.Principal) (*transfer.PublishResult, error) {
	draft, exists, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("error loading draft: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("draft not found")
	}

	if !principal.IsSuperuser && draft.UserID != principal.ID {
		return nil, apperr.Forbidden("not enough permissions")
	}

	// A published draft is terminal. Without this check a second attempt
	// would create a duplicate upstream post.
	if draft.IsPublished {
		return nil, apperr.Conflict("draft is already published")
	}

	if utf8.RuneCountInString(draft.Content) > models.MaxContentLength {
		return nil, apperr.ValidationRejected(fmt.Sprintf("content exceeds the maximum length of %d characters", models.MaxContentLength))
	}

	upstream, err := retry.Do(ctx, s.policy, func(err error) bool {
		return apperr.Is(err, apperr.KindTransientUpstream)
	}, func(ctx context.Context) (*transfer.TwitterResponse, error) {
		return s.postTweet(ctx, draft.Content)
	})
	if err != nil {
		return nil, err
	}

	tweet := &models.Tweet{
		Content:   draft.Content,
		TwitterID: upstream.Data.ID,
	}
	if err := s.commitPublish(ctx, draft.ID, tweet); err != nil {
		// The upstream post exists but local state still says unpublished.
		// There is no compensating delete on the platform side, so leave a
		// reconciliation trail.
		slog.Error("publish committed upstream but not locally, manual reconciliation needed",
			"draft_id", draft.ID, "twitter_id", upstream.Data.ID, "error", err)
		return nil, fmt.Errorf("error saving published tweet: %w", err)
	}

	return &transfer.PublishResult{
		Message:  "Tweet posted successfully",
		Tweet:    tweet,
		Upstream: *upstream,
	}, nil
}

// postTweet makes one outbound attempt. 429 and transport failures come back
// as TransientUpstream so the retry loop picks them up; any other
// non-success status is PermanentUpstream and fails the pipeline at once.
func (s *publishService) postTweet(ctx context.Context, content string) (*transfer.TwitterResponse, error) {
	body, err := json.Marshal(tweetPayload{Text: content})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, apperr.Wrap(apperr.KindTransientUpstream, "request to twitter failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTransientUpstream, "reading twitter response failed", err)
	}

	switch {
	case resp.StatusCode == http.StatusCreated:
		var tr transfer.TwitterResponse
		if err := json.Unmarshal(respBody, &tr); err != nil {
			return nil, fmt.Errorf("malformed twitter response: %w", err)
		}
		return &tr, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apperr.New(apperr.KindTransientUpstream, "twitter rate limit hit")

	default:
		return nil, &apperr.Error{
			Kind:   apperr.KindPermanentUpstream,
			Msg:    fmt.Sprintf("twitter returned %d: %s", resp.StatusCode, string(respBody)),
			Status: resp.StatusCode,
		}
	}
}

// commitPublish inserts the tweet record and flips the draft inside one
// transaction, retrying on datastore contention.
func (s *publishService) commitPublish(ctx context.Context, draftID uuid.UUID, tweet *models.Tweet) error {
	policy := retry.Policy{Retries: 2, Delay: time.Second, Backoff: 2}

	_, err := retry.Do(ctx, policy, apperr.IsContention, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.commitOnce(ctx, draftID, tweet)
	})
	return err
}

func (s *publishService) commitOnce(ctx context.Context, draftID uuid.UUID, tweet *models.Tweet) (err error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = s.tr.Create(ctx, tx, tweet); err != nil {
		return fmt.Errorf("error creating tweet record: %w", err)
	}
	if err = s.dr.MarkPublished(ctx, tx, draftID); err != nil {
		return fmt.Errorf("error updating draft: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
