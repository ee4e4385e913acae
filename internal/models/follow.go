package models

import "time"

// Follow is a directed follow edge between two users.
// The (FollowerID, FollowingID) pair is the primary key, so each ordered
// pair can exist at most once. Self-follows are rejected at the service layer.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"followerId"`
	Follower    User      `gorm:"foreignKey:FollowerID" json:"-"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false" json:"followingId"`
	Following   User      `gorm:"foreignKey:FollowingID" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
