package models

import (
	"time"

	"gorm.io/gorm"
)

// User merepresentasikan tabel 'users'.
// Saldo TIDAK disimpan di sini. Satu-satunya sumber saldo adalah
// wallets.available, biar tidak ada dua angka yang bisa selisih.
type User struct {
	ID           uint64         `gorm:"primaryKey" json:"id"`
	FullName     string         `gorm:"size:100;not null" json:"full_name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // json:"-" biar hash tidak pernah ikut response
	Phone        string         `gorm:"column:phone_number;size:20" json:"phone"`
	Country      string         `gorm:"size:60" json:"country"`
	City         string         `gorm:"size:60" json:"city"`
	Address      string         `gorm:"type:text" json:"address"`
	ReferralCode string         `gorm:"uniqueIndex;size:8;not null" json:"referral_code"`
	ReferredBy   string         `gorm:"size:8" json:"referred_by,omitempty"` // kode referral yang dipakai waktu daftar
	IsVerified   bool           `gorm:"default:false" json:"is_verified"`
	FCMToken     string         `gorm:"size:255" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Wallet      *Wallet      `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
	Investments []Investment `gorm:"foreignKey:UserID" json:"investments,omitempty"`
}

// RegisterInput sengaja TANPA binding:"required" karena urutan
// validasinya diatur manual di handler (field wajib dulu, baru
// kecocokan password, baru panjang, baru format nomor HP).
type RegisterInput struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Country         string `json:"country"`
	ReferralCode    string `json:"referral_code"` // kode milik orang yang ngajak, opsional
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FCMToken string `json:"fcm_token"`
}

// OAuthInput dipakai endpoint login via provider (Google dkk).
type OAuthInput struct {
	Provider string `json:"provider" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	IDToken  string `json:"id_token" binding:"required"`
	FCMToken string `json:"fcm_token"`
}

// UpdateProfileInput partial update; field kosong tidak disentuh
type UpdateProfileInput struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Address  string `json:"address"`
}
