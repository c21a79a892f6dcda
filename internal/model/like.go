package model

import "time"

// Like records that a user liked a message.
// idx_like_pair = (user_liked_id, msg_id), unique so a user can like a
// message at most once.
type Like struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	MessageID   int64 `gorm:"column:msg_id;index:idx_like_msg;uniqueIndex:idx_like_pair;not null"`
	UserLikedID int64 `gorm:"column:user_liked_id;uniqueIndex:idx_like_pair;not null"`
	CreatedAt   time.Time
}

func (Like) TableName() string { return "likes" }
