package service

import (
	"context"
	"fmt"
	"time"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/cache"
	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/draftwirehq/draftwire/internal/repository"
	"github.com/google/uuid"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id uuid.UUID) (*models.User, error)
	InvalidateUser(ctx context.Context, id uuid.UUID)
}

type userService struct {
	ur    repository.UserRepository
	cache *cache.Service
	ttl   time.Duration
}

func NewUserService(ur repository.UserRepository, c *cache.Service) UserService {
	return &userService{
		ur:    ur,
		cache: c,
		ttl:   24 * time.Hour,
	}
}

const userCacheNamespace = "user"

// GetUserInfo is a read-through lookup: the cache snapshot is advisory and
// the user table stays authoritative. A cache outage silently degrades to
// hitting the database on every call.
func (s *userService) GetUserInfo(ctx context.Context, id uuid.UUID) (*models.User, error) {
	key := cache.Key(userCacheNamespace, true, id)

	user, err := cache.GetOrCompute(ctx, s.cache, key, s.ttl, func() (*models.User, error) {
		user, exists, err := s.ur.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("error getting user info: %w", err)
		}
		if !exists {
			return nil, apperr.NotFound("user not found")
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// InvalidateUser drops every cached snapshot for the id, for use after the
// identity service mutates the profile.
func (s *userService) InvalidateUser(ctx context.Context, id uuid.UUID) {
	key := cache.Key(userCacheNamespace, true, id)
	s.cache.DeletePattern(ctx, key)
}
