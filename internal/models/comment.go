// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a post. Replies reference their parent via
// ParentCommentID; the parent row cannot be deleted while replies exist.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PostID          uint      `gorm:"not null;index" json:"postId"`
	Post            Post      `gorm:"foreignKey:PostID" json:"-"`
	UserID          uint      `gorm:"not null;index" json:"userId"`
	User            User      `gorm:"foreignKey:UserID" json:"-"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uint     `gorm:"index" json:"parentCommentId,omitempty"`
	ParentComment   *Comment  `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CommentView is a comment annotated with its author's public projection.
type CommentView struct {
	ID              uint      `json:"id"`
	Content         string    `json:"content"`
	ParentCommentID *uint     `json:"parentCommentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	User            Profile   `json:"user"`
}
