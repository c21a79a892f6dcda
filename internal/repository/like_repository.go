package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/warbler/internal/model"
)

type LikeRepository interface {
	Create(ctx context.Context, userID, messageID int64) error
	Delete(ctx context.Context, userID, messageID int64) error
	Exists(ctx context.Context, userID, messageID int64) (bool, error)
	CountForMessage(ctx context.Context, messageID int64) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Create(ctx context.Context, userID, messageID int64) error {
	l := &model.Like{UserLikedID: userID, MessageID: messageID}
	// duplicate like collapses on idx_like_pair
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, messageID int64) error {
	return r.db.WithContext(ctx).
		Where("user_liked_id = ? AND msg_id = ?", userID, messageID).
		Delete(&model.Like{}).Error
}

func (r *likeRepository) Exists(ctx context.Context, userID, messageID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_liked_id = ? AND msg_id = ?", userID, messageID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *likeRepository) CountForMessage(ctx context.Context, messageID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("msg_id = ?", messageID).
		Count(&cnt).Error
	return cnt, err
}
