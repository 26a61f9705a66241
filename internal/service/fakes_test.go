package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/draftwirehq/draftwire/internal/push"
	"github.com/google/uuid"
)

type fakeDraftRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*models.Draft
}

func newFakeDraftRepo(drafts ...*models.Draft) *fakeDraftRepo {
	r := &fakeDraftRepo{drafts: make(map[uuid.UUID]*models.Draft)}
	for _, d := range drafts {
		r.drafts[d.ID] = d
	}
	return r
}

func (r *fakeDraftRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Draft, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, false, nil
	}
	copy := *d
	return &copy, true, nil
}

func (r *fakeDraftRepo) Create(ctx context.Context, tx *sql.Tx, draft *models.Draft) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = draft.CreatedAt
	copy := *draft
	r.drafts[draft.ID] = &copy
	return draft.ID, nil
}

func (r *fakeDraftRepo) Update(ctx context.Context, draft *models.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *draft
	copy.UpdatedAt = time.Now()
	r.drafts[draft.ID] = &copy
	return nil
}

func (r *fakeDraftRepo) MarkPublished(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.drafts[id]; ok {
		d.IsPublished = true
		d.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeDraftRepo) ListByUserID(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Draft
	for _, d := range r.drafts {
		if d.UserID == userID {
			copy := *d
			out = append(out, &copy)
		}
	}
	return paginate(out, skip, limit), nil
}

func (r *fakeDraftRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, d := range r.drafts {
		if d.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeDraftRepo) List(ctx context.Context, skip, limit int) ([]*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Draft
	for _, d := range r.drafts {
		copy := *d
		out = append(out, &copy)
	}
	return paginate(out, skip, limit), nil
}

func (r *fakeDraftRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.drafts)), nil
}

func (r *fakeDraftRepo) ListDueScheduled(ctx context.Context, due time.Time) ([]*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Draft
	for _, d := range r.drafts {
		if !d.IsPublished && d.ScheduledTime.Valid && !d.ScheduledTime.Time.After(due) {
			copy := *d
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeDraftRepo) Remove(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

func paginate(in []*models.Draft, skip, limit int) []*models.Draft {
	if skip >= len(in) {
		return nil
	}
	end := skip + limit
	if end > len(in) {
		end = len(in)
	}
	return in[skip:end]
}

type fakeTweetRepo struct {
	mu     sync.Mutex
	tweets []*models.Tweet
}

func (r *fakeTweetRepo) Create(ctx context.Context, tx *sql.Tx, tweet *models.Tweet) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tweet.ID == uuid.Nil {
		tweet.ID = uuid.New()
	}
	tweet.CreatedAt = time.Now()
	copy := *tweet
	r.tweets = append(r.tweets, &copy)
	return tweet.ID, nil
}

func (r *fakeTweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tw := range r.tweets {
		if tw.ID == id {
			copy := *tw
			return &copy, true, nil
		}
	}
	return nil, false, nil
}

func (r *fakeTweetRepo) List(ctx context.Context, skip, limit int) ([]*models.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Tweet(nil), r.tweets...), nil
}

func (r *fakeTweetRepo) all() []*models.Tweet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Tweet(nil), r.tweets...)
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs []*models.PushSubscription
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *models.PushSubscription) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.subs {
		if existing.Endpoint == sub.Endpoint {
			return uuid.Nil, apperr.Conflict("subscription already exists")
		}
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	sub.CreatedAt = time.Now()
	copy := *sub
	r.subs = append(r.subs, &copy)
	return sub.ID, nil
}

func (r *fakeSubscriptionRepo) GetByEndpoint(ctx context.Context, endpoint string) (*models.PushSubscription, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.Endpoint == endpoint {
			copy := *sub
			return &copy, true, nil
		}
	}
	return nil, false, nil
}

func (r *fakeSubscriptionRepo) ListByGroup(ctx context.Context, group string) ([]*models.PushSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PushSubscription
	for _, sub := range r.subs {
		if sub.Group.Valid && sub.Group.String == group {
			copy := *sub
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.PushSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []*models.PushSubscription
	for _, sub := range r.subs {
		if _, ok := wanted[sub.ID]; ok {
			copy := *sub
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) RemoveByEndpoint(ctx context.Context, endpoint string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.subs {
		if sub.Endpoint == endpoint {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubscriptionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[uuid.UUID]*models.NotificationTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]*models.NotificationTemplate)}
}

func (r *fakeTemplateRepo) titleTaken(title string, exclude uuid.UUID) bool {
	for _, tpl := range r.templates {
		if tpl.Title == title && tpl.ID != exclude {
			return true
		}
	}
	return false
}

func (r *fakeTemplateRepo) Create(ctx context.Context, tpl *models.NotificationTemplate) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.titleTaken(tpl.Title, uuid.Nil) {
		return uuid.Nil, apperr.Conflict("template title already exists")
	}
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	copy := *tpl
	r.templates[tpl.ID] = &copy
	return tpl.ID, nil
}

func (r *fakeTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.NotificationTemplate, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tpl, ok := r.templates[id]
	if !ok {
		return nil, false, nil
	}
	copy := *tpl
	return &copy, true, nil
}

func (r *fakeTemplateRepo) List(ctx context.Context) ([]*models.NotificationTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.NotificationTemplate
	for _, tpl := range r.templates {
		copy := *tpl
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(ctx context.Context, tpl *models.NotificationTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.titleTaken(tpl.Title, tpl.ID) {
		return apperr.Conflict("template title already exists")
	}
	copy := *tpl
	r.templates[tpl.ID] = &copy
	return nil
}

func (r *fakeTemplateRepo) Remove(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.templates, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
	calls int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	u, ok := r.users[id]
	if !ok {
		return nil, false, nil
	}
	copy := *u
	return &copy, true, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, true, nil
		}
	}
	return nil, false, nil
}

type fakeSender struct {
	mu            sync.Mutex
	sent          []uuid.UUID
	failEndpoints map[string]struct{}
}

func newFakeSender(failEndpoints ...string) *fakeSender {
	s := &fakeSender{failEndpoints: make(map[string]struct{})}
	for _, e := range failEndpoints {
		s.failEndpoints[e] = struct{}{}
	}
	return s
}

func (s *fakeSender) Send(sub *models.PushSubscription, payload push.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, fail := s.failEndpoints[sub.Endpoint]; fail {
		return apperr.New(apperr.KindUnknown, "push endpoint rejected the message")
	}
	s.sent = append(s.sent, sub.ID)
	return nil
}

func (s *fakeSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}
