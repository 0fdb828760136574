package models

import "time"

const (
	PlanActive   = "Active"
	PlanInactive = "Inactive"
)

const (
	InvestmentActive    = "Active"
	InvestmentCompleted = "Completed"
)

// Plan produk investasi yang bisa dibeli user.
// Harga & payout dalam minor units.
type Plan struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Price             int64     `gorm:"not null" json:"price"`
	PayoutPerDrop     int64     `gorm:"not null" json:"payout_per_drop"`
	DropCount         int       `gorm:"not null" json:"drop_count"`
	TotalReturn       int64     `gorm:"not null" json:"total_return"`
	DropIntervalHours int       `gorm:"not null;default:24" json:"drop_interval_hours"`
	Status            string    `gorm:"size:10;default:'Active'" json:"status"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

// Investment satu pembelian plan. Field plan di-copy ke sini
// (snapshot) supaya perubahan harga plan tidak mengubah investasi lama.
type Investment struct {
	ID                uint64     `gorm:"primaryKey" json:"id"`
	UserID            uint64     `gorm:"not null;index" json:"user_id"`
	PlanID            uint64     `gorm:"not null;index" json:"plan_id"`
	PlanName          string     `gorm:"size:50;not null" json:"plan_name"`
	Amount            int64      `gorm:"not null" json:"amount"`
	PayoutPerDrop     int64      `gorm:"not null" json:"payout_per_drop"`
	DropCount         int        `gorm:"not null" json:"drop_count"`
	DropsPaid         int        `gorm:"not null;default:0" json:"drops_paid"`
	DropIntervalHours int        `gorm:"not null;default:24" json:"drop_interval_hours"`
	TotalReturn       int64      `gorm:"not null" json:"total_return"`
	TransactionID     uint64     `gorm:"not null;index" json:"transaction_id"` // transaksi pembayarannya
	Status            string     `gorm:"size:12;default:'Active'" json:"status"`
	NextDropAt        *time.Time `json:"next_drop_at,omitempty"`
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time  `json:"-"`
}

// CardPaymentInput pembelian plan pakai kartu (simulasi settle langsung)
type CardPaymentInput struct {
	PlanID uint64 `json:"plan_id"`
	CardDetails
	AcceptTerms bool `json:"accept_terms"`
}
