package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/warbler/internal/model"
	"github.com/d60-Lab/warbler/internal/repository"
)

var ErrFollowSelf = errors.New("cannot follow self")

type RelationshipService interface {
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
	Following(ctx context.Context, userID int64) ([]*model.User, error)
	Followers(ctx context.Context, userID int64) ([]*model.User, error)
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	IsFollowedBy(ctx context.Context, userID, otherID int64) (bool, error)
	// FollowingIDs serves the feed; it reads through the cache when one is
	// configured.
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}

type relationshipService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	cache   *FollowingCache
}

func NewRelationshipService(follows repository.FollowRepository, users repository.UserRepository, cache *FollowingCache) RelationshipService {
	return &relationshipService{follows: follows, users: users, cache: cache}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrFollowSelf
	}
	if _, err := s.users.GetByID(ctx, followedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.follows.Create(ctx, followerID, followedID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, followerID)
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	if err := s.follows.Delete(ctx, followerID, followedID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, followerID)
	return nil
}

func (s *relationshipService) Following(ctx context.Context, userID int64) ([]*model.User, error) {
	return s.follows.ListFollowing(ctx, userID)
}

func (s *relationshipService) Followers(ctx context.Context, userID int64) ([]*model.User, error) {
	return s.follows.ListFollowers(ctx, userID)
}

func (s *relationshipService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.follows.Exists(ctx, followerID, followedID)
}

// IsFollowedBy is the dual of IsFollowing: IsFollowedBy(a, b) holds exactly
// when IsFollowing(b, a) does.
func (s *relationshipService) IsFollowedBy(ctx context.Context, userID, otherID int64) (bool, error) {
	return s.follows.Exists(ctx, otherID, userID)
}

func (s *relationshipService) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	if ids, ok := s.cache.Get(ctx, userID); ok {
		return ids, nil
	}
	ids, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, userID, ids)
	return ids, nil
}
