package model

import "time"

// Follow is a directed edge: FollowerID follows FollowedID.
// The composite primary key makes duplicate edges impossible.
type Follow struct {
	FollowedID int64 `gorm:"primaryKey;autoIncrement:false;column:followed_id"`
	FollowerID int64 `gorm:"primaryKey;autoIncrement:false;column:follower_id"`
	CreatedAt  time.Time
}

func (Follow) TableName() string { return "follows" }
