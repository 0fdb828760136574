package models

import "time"

// Status transaksi. Enum string biar gampang dibaca langsung di DB.
const (
	TxSuccess = "SUCCESS"
	TxPending = "PENDING"
	TxFailed  = "FAILED"
)

// Tipe transaksi
const (
	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"
	TxTypeCrypto     = "crypto"
	TxTypePayout     = "payout" // drop dari investasi yang cair
)

// Wallet satu per user. Semua nominal dalam minor units (sen),
// int64, jangan float. Duit tidak boleh kena pembulatan biner.
type Wallet struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"unique;not null" json:"user_id"`
	Available   int64     `gorm:"not null;default:0" json:"available"`
	Pending     int64     `gorm:"not null;default:0" json:"pending"` // withdrawal yang lagi diproses
	TotalEarned int64     `gorm:"not null;default:0" json:"total_earned"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Transaction itu log append-only. Tidak pernah di-update kecuali
// kolom status (settlement gateway / approve withdrawal).
type Transaction struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	UserID   uint64 `gorm:"not null;index" json:"user_id"`
	Type     string `gorm:"size:20;not null;index" json:"type"`
	Amount   int64  `gorm:"not null" json:"amount"`
	Currency string `gorm:"size:10" json:"currency,omitempty"` // diisi untuk transaksi crypto
	Status   string `gorm:"size:10;not null" json:"status"`
	Note     string `gorm:"size:255" json:"note,omitempty"`
	OrderID  string `gorm:"size:64;index" json:"order_id,omitempty"` // nomor order gateway (Midtrans)

	// Detail crypto
	TxHash   string `gorm:"size:128" json:"tx_hash,omitempty"`
	ProofKey string `gorm:"size:255" json:"-"` // object key S3, bukan byte gambar

	// Detail kartu: HANYA last 4 + expiry, nomor penuh tidak pernah mampir ke DB
	CardLast4  string `gorm:"size:4" json:"card_last4,omitempty"`
	CardExpiry string `gorm:"size:5" json:"card_expiry,omitempty"`

	// Detail bank untuk withdrawal
	BankName      string `gorm:"size:100" json:"bank_name,omitempty"`
	AccountName   string `gorm:"size:100" json:"account_name,omitempty"`
	AccountNumber string `gorm:"size:40" json:"account_number,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// CardDetails field kartu yang dipakai deposit langsung & beli plan
type CardDetails struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"` // MM/YY
	CVC        string `json:"cvc"`
	HolderName string `json:"holder_name"`
}

type DepositInput struct {
	Amount int64 `json:"amount"`
	CardDetails
	AcceptTerms bool `json:"accept_terms"`
}

type GatewayDepositInput struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

type WithdrawInput struct {
	Amount        int64  `json:"amount"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}
