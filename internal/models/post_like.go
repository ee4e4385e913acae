package models

import "time"

// PostLike records a user's like on a post.
// The (PostID, UserID) pair is the primary key, so a user can hold at most
// one like per post.
type PostLike struct {
	PostID  uint      `gorm:"primaryKey;autoIncrement:false" json:"postId"`
	Post    Post      `gorm:"foreignKey:PostID" json:"-"`
	UserID  uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	User    User      `gorm:"foreignKey:UserID" json:"-"`
	LikedAt time.Time `gorm:"autoCreateTime" json:"likedAt"`
}
