package models

import "time"

// RefreshToken is an opaque long-lived credential persisted server-side.
// The access token is never stored; this row is the only revocable secret.
type RefreshToken struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Token      string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiryDate time.Time `gorm:"not null" json:"expiryDate"`
	IsRevoked  bool      `gorm:"default:false" json:"isRevoked"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
}

// Valid reports whether the token can still be exchanged for an access token.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.IsRevoked && t.ExpiryDate.After(now)
}
