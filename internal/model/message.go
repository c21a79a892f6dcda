package model

import "time"

// MaxMessageLen bounds the text of a single warble.
const MaxMessageLen = 140

// Message is a single post. UserID is set at creation and never changes.
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"type:varchar(140);not null"`
	Timestamp time.Time `gorm:"index;not null"`
	UserID    int64     `gorm:"index:idx_message_user;not null"`
}

func (Message) TableName() string { return "messages" }
