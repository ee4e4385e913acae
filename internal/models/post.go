// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Visibility controls who can see a post.
type Visibility string

const (
	// VisibilityPublic makes the post visible to everyone.
	VisibilityPublic Visibility = "Public"
	// VisibilityFriends restricts the post to mutual followers.
	VisibilityFriends Visibility = "Friends"
	// VisibilityPrivate restricts the post to its author.
	VisibilityPrivate Visibility = "Private"
)

// ValidVisibility reports whether v is one of the known visibility values.
func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}

// Post represents a post in the Thread application.
// LikeCount and CommentCount are denormalized caches of the likes/comments
// tables; every mutation updates the counter and the join row in the same
// transaction.
type Post struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"userId"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Images     []string   `gorm:"serializer:json" json:"images"`
	LikeCount  int        `gorm:"default:0" json:"likeCount"`
	CommentCount int      `gorm:"default:0" json:"commentCount"`
	ShareCount int        `gorm:"default:0" json:"shareCount"`
	ReupCount  int        `gorm:"default:0" json:"reupCount"`
	Visibility Visibility `gorm:"type:varchar(10);default:'Public'" json:"visibility"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Comments []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []PostLike `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// PostView is a post annotated with viewer-relative flags and its author's
// public projection. This is the shape the feed, profile and detail endpoints
// return.
type PostView struct {
	ID           uint       `json:"id"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Images       []string   `json:"images"`
	LikeCount    int        `json:"likeCount"`
	CommentCount int        `json:"commentCount"`
	ShareCount   int        `json:"shareCount"`
	ReupCount    int        `json:"reupCount"`
	IsLiked      bool       `json:"isLiked"`
	Visibility   Visibility `json:"visibility"`
	User         Profile    `json:"user"`

	// Comments is populated only on the post detail endpoint.
	Comments []CommentView `json:"comments,omitempty"`
}

// PostPreview returns a truncated excerpt of the post content for
// notification payloads.
func (p *Post) PostPreview() string {
	const max = 100
	runes := []rune(p.Content)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return p.Content
}
