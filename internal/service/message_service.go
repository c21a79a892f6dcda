package service

import (
	"context"
	"errors"
	"time"

	"github.com/d60-Lab/warbler/internal/model"
	"github.com/d60-Lab/warbler/internal/repository"
)

var (
	ErrNotOwner       = errors.New("not the message owner")
	ErrMessageTooLong = errors.New("message exceeds 140 characters")
	ErrEmptyMessage   = errors.New("message text is empty")
)

type MessageService interface {
	Post(ctx context.Context, userID int64, text string) (*model.Message, error)
	Get(ctx context.Context, id int64) (*model.Message, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Message, error)
	// Delete removes the message only when userID owns it.
	Delete(ctx context.Context, userID, messageID int64) error
	// Feed returns up to 100 newest messages from the users userID follows,
	// excluding userID's own posts.
	Feed(ctx context.Context, userID int64) ([]*model.Message, error)
	// FeedWithOwn also includes the user's own posts. Not routed anywhere;
	// the live timeline contract excludes own posts.
	FeedWithOwn(ctx context.Context, userID int64) ([]*model.Message, error)
	Like(ctx context.Context, userID, messageID int64) error
	Unlike(ctx context.Context, userID, messageID int64) error
	HasLiked(ctx context.Context, userID, messageID int64) (bool, error)
}

type messageService struct {
	messages  repository.MessageRepository
	likes     repository.LikeRepository
	relations RelationshipService
}

func NewMessageService(messages repository.MessageRepository, likes repository.LikeRepository, relations RelationshipService) MessageService {
	return &messageService{messages: messages, likes: likes, relations: relations}
}

func (s *messageService) Post(ctx context.Context, userID int64, text string) (*model.Message, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if len([]rune(text)) > model.MaxMessageLen {
		return nil, ErrMessageTooLong
	}
	m := &model.Message{Text: text, UserID: userID, Timestamp: time.Now().UTC()}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *messageService) Get(ctx context.Context, id int64) (*model.Message, error) {
	m, err := s.messages.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *messageService) ListByUser(ctx context.Context, userID int64) ([]*model.Message, error) {
	return s.messages.ListByUser(ctx, userID)
}

func (s *messageService) Delete(ctx context.Context, userID, messageID int64) error {
	m, err := s.Get(ctx, messageID)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return ErrNotOwner
	}
	return s.messages.DeleteCascade(ctx, messageID)
}

func (s *messageService) Feed(ctx context.Context, userID int64) ([]*model.Message, error) {
	ids, err := s.relations.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.messages.Feed(ctx, ids)
}

func (s *messageService) FeedWithOwn(ctx context.Context, userID int64) ([]*model.Message, error) {
	ids, err := s.relations.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.messages.Feed(ctx, append(ids, userID))
}

func (s *messageService) Like(ctx context.Context, userID, messageID int64) error {
	if _, err := s.Get(ctx, messageID); err != nil {
		return err
	}
	return s.likes.Create(ctx, userID, messageID)
}

func (s *messageService) Unlike(ctx context.Context, userID, messageID int64) error {
	return s.likes.Delete(ctx, userID, messageID)
}

func (s *messageService) HasLiked(ctx context.Context, userID, messageID int64) (bool, error) {
	return s.likes.Exists(ctx, userID, messageID)
}
