package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/warbler/internal/model"
)

// FeedLimit caps every timeline-style query.
const FeedLimit = 100

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Message, error)
	// Feed returns the newest messages authored by any of authorIDs.
	Feed(ctx context.Context, authorIDs []int64) ([]*model.Message, error)
	ListLikedBy(ctx context.Context, userID int64) ([]*model.Message, error)
	// DeleteCascade removes the message and its like edges in one
	// transaction.
	DeleteCascade(ctx context.Context, id int64) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Message, error) {
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(FeedLimit).
		Find(&res).Error
	return res, err
}

func (r *messageRepository) Feed(ctx context.Context, authorIDs []int64) ([]*model.Message, error) {
	if len(authorIDs) == 0 {
		return []*model.Message{}, nil
	}
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Order("timestamp DESC").
		Limit(FeedLimit).
		Find(&res).Error
	return res, err
}

func (r *messageRepository) ListLikedBy(ctx context.Context, userID int64) ([]*model.Message, error) {
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("id IN (?)",
			r.db.Model(&model.Like{}).Select("msg_id").Where("user_liked_id = ?", userID),
		).
		Order("timestamp DESC").
		Limit(FeedLimit).
		Find(&res).Error
	return res, err
}

func (r *messageRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("msg_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Message{}, id).Error
	})
}
