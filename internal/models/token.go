package models

import "time"

// RefreshToken disimpan di DB supaya bisa dicabut (logout / rotasi).
// JTI-nya UUID random, itu yang dipegang client.
type RefreshToken struct {
	JTI       string    `gorm:"primaryKey;size:36" json:"jti"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}
