package models

import "time"

// ReferralCredit jejak audit bonus referral: satu baris per signup
// yang memakai kode seseorang. Saldonya sendiri masuk ke wallet
// referrer di transaksi DB yang sama dengan pembuatan user baru.
type ReferralCredit struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	ReferrerID     uint64    `gorm:"not null;index" json:"referrer_id"`
	ReferredUserID uint64    `gorm:"not null;index" json:"referred_user_id"`
	Amount         int64     `gorm:"not null" json:"amount"`
	CreatedAt      time.Time `json:"created_at"`
}
