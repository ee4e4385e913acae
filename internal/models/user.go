// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the Thread application.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"unique;not null" json:"username"`
	Password         string    `gorm:"not null" json:"-"`
	DisplayName      string    `json:"displayName"`
	AvatarURL        string    `json:"avatarURL"`
	Introduction     string    `json:"introduction"`
	AnotherPath      string    `json:"anotherPath"`
	Follower         int       `gorm:"default:0" json:"follower"`
	Verified         bool      `gorm:"default:false" json:"verified"`
	IsAdmin          bool      `gorm:"default:false" json:"-"`
	NeedMoreInfoUser bool      `gorm:"default:true" json:"needMoreInfoUser"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// Relationships
	Posts         []Post         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Comments      []Comment      `gorm:"foreignKey:UserID" json:"-"`
	Likes         []PostLike     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Profile is the public projection of a user returned by profile, search and
// comment/notification payloads. IsFollowing is viewer-relative and computed
// at query time.
type Profile struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	AvatarURL    string `json:"avatarURL"`
	Introduction string `json:"introduction"`
	AnotherPath  string `json:"anotherPath,omitempty"`
	Follower     int    `json:"follower"`
	Verified     bool   `json:"verified"`
	IsFollowing  bool   `json:"isFollowing"`
}

// AsProfile converts a User into its public projection. The viewer-relative
// follow flag is filled in by the caller.
func (u *User) AsProfile() Profile {
	return Profile{
		ID:           u.ID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		AvatarURL:    u.AvatarURL,
		Introduction: u.Introduction,
		AnotherPath:  u.AnotherPath,
		Follower:     u.Follower,
		Verified:     u.Verified,
	}
}
