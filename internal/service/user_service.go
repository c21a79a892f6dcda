package service

import (
	"context"
	"errors"
	"strings"

	"github.com/d60-Lab/warbler/internal/auth"
	"github.com/d60-Lab/warbler/internal/model"
	"github.com/d60-Lab/warbler/internal/repository"
)

var (
	ErrUsernameTaken = repository.ErrUsernameTaken
	ErrEmailTaken    = repository.ErrEmailTaken
	ErrNotFound      = errors.New("not found")
	// ErrInvalidLogin covers both unknown username and wrong password so
	// the response cannot reveal which one happened.
	ErrInvalidLogin = errors.New("invalid credentials")
)

// ProfileUpdate carries the new profile values. Blank fields keep the
// current value.
type ProfileUpdate struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

type UserService interface {
	Signup(ctx context.Context, username, email, password, imageURL string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Search(ctx context.Context, q string) ([]*model.User, error)
	// UpdateProfile re-authenticates with the current password before
	// applying any change.
	UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate, currentPassword string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	LikedMessages(ctx context.Context, userID int64) ([]*model.Message, error)
}

type userService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	follows  repository.FollowRepository
	cache    *FollowingCache
}

func NewUserService(users repository.UserRepository, messages repository.MessageRepository, follows repository.FollowRepository, cache *FollowingCache) UserService {
	return &userService{users: users, messages: messages, follows: follows, cache: cache}
}

func (s *userService) Signup(ctx context.Context, username, email, password, imageURL string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if imageURL == "" {
		imageURL = model.DefaultImageURL
	}
	u := &model.User{
		Username:       strings.TrimSpace(username),
		Email:          strings.TrimSpace(strings.ToLower(email)),
		Password:       hash,
		ImageURL:       imageURL,
		HeaderImageURL: model.DefaultHeaderImageURL,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, ErrInvalidLogin
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *userService) Search(ctx context.Context, q string) ([]*model.User, error) {
	return s.users.List(ctx, q)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate, currentPassword string) (*model.User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.Password, currentPassword) {
		return nil, ErrInvalidLogin
	}
	if upd.Username != "" {
		u.Username = upd.Username
	}
	if upd.Email != "" {
		u.Email = strings.TrimSpace(strings.ToLower(upd.Email))
	}
	if upd.ImageURL != "" {
		u.ImageURL = upd.ImageURL
	}
	if upd.HeaderImageURL != "" {
		u.HeaderImageURL = upd.HeaderImageURL
	}
	if upd.Bio != "" {
		u.Bio = upd.Bio
	}
	if upd.Location != "" {
		u.Location = upd.Location
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	// followers' cached following indexes still name this user
	followerIDs, err := s.follows.FollowerIDs(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	for _, fid := range followerIDs {
		s.cache.Invalidate(ctx, fid)
	}
	return nil
}

func (s *userService) LikedMessages(ctx context.Context, userID int64) ([]*model.Message, error) {
	return s.messages.ListLikedBy(ctx, userID)
}
