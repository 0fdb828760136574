package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"investra-backend/internal/config"
	"investra-backend/internal/feed"
	"investra-backend/internal/models"
	"investra-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

// errInsufficientBalance sinyal dari dalam transaksi DB kalau guard
// saldo di SQL tidak lolos
var errInsufficientBalance = errors.New("saldo tidak cukup")

// midtransEnv Sandbox kecuali MIDTRANS_ENV=production
func midtransEnv() midtrans.EnvironmentType {
	if os.Getenv("MIDTRANS_ENV") == "production" {
		return midtrans.Production
	}
	return midtrans.Sandbox
}

// GetMyWallet saldo + riwayat transaksi, terbaru duluan
func GetMyWallet(c *gin.Context) {
	userID := c.GetUint64("userID")

	wallet, err := getOrCreateWallet(userID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil wallet", nil)
		return
	}

	var transactions []models.Transaction
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil transaksi", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Dompet saya", gin.H{
		"wallet":       wallet,
		"transactions": transactions,
	})
}

// Deposit top-up saldo pakai kartu (settle langsung, simulasi).
// Validasi kartu sama persis dengan pembelian plan.
func Deposit(c *gin.Context) {
	userID := c.GetUint64("userID")

	var input models.DepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	if input.Amount <= 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Nominal deposit harus lebih dari 0", nil)
		return
	}
	if msg := utils.ValidateCard(input.CardNumber, input.Expiry, input.CVC, input.HolderName); msg != "" {
		utils.APIResponse(c, http.StatusBadRequest, false, msg, nil)
		return
	}
	if !input.AcceptTerms {
		utils.APIResponse(c, http.StatusBadRequest, false, "Kamu harus menyetujui syarat & ketentuan", nil)
		return
	}

	// Wallet harus ada sebelum di-update atomik
	if _, err := getOrCreateWallet(userID); err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil wallet", nil)
		return
	}

	txRecord := models.Transaction{
		UserID:     userID,
		Type:       models.TxTypeDeposit,
		Amount:     input.Amount,
		Status:     models.TxSuccess,
		Note:       "Deposit via kartu",
		CardLast4:  utils.CardLast4(input.CardNumber),
		CardExpiry: input.Expiry,
	}

	// Saldo nambah + row transaksi dalam satu transaksi DB
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Wallet{}).Where("user_id = ?", userID).
			Update("available", gorm.Expr("available + ?", input.Amount)).Error; err != nil {
			return err
		}
		return tx.Create(&txRecord).Error
	})
	if err != nil {
		log.Printf("Deposit gagal user %d: %v", userID, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Deposit gagal diproses", nil)
		return
	}

	feed.PublishChange(context.Background(), config.RDB, userID)

	utils.APIResponse(c, http.StatusCreated, true, "Deposit berhasil", txRecord)
}

// GatewayDeposit top-up lewat Midtrans Snap. Transaksi dicatat
// PENDING, saldonya baru nambah waktu webhook settlement masuk.
func GatewayDeposit(c *gin.Context) {
	userID := c.GetUint64("userID")

	var input models.GatewayDepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Nominal deposit tidak valid", nil)
		return
	}

	// Midtrans cuma terima rupiah bulat. Nominal dengan sen sisa
	// DITOLAK di sini: kalau dibulatkan diam-diam, row transaksi dan
	// tagihan gateway beda nilai dan settlement mengkredit lebih.
	if input.Amount%100 != 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Nominal deposit harus rupiah bulat (tanpa sen)", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User tidak ditemukan", nil)
		return
	}

	orderID := fmt.Sprintf("DEP-%d-%d", userID, time.Now().Unix())

	txRecord := models.Transaction{
		UserID:  userID,
		Type:    models.TxTypeDeposit,
		Amount:  input.Amount,
		Status:  models.TxPending,
		Note:    "Deposit via payment gateway",
		OrderID: orderID,
	}
	if err := config.DB.Create(&txRecord).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal membuat transaksi", nil)
		return
	}

	// Init client Snap
	var s snap.Client
	s.New(os.Getenv("MIDTRANS_SERVER_KEY"), midtransEnv())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID: orderID,
			// Midtrans minta nominal rupiah bulat, kita simpan sen
			GrossAmt: input.Amount / 100,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
			Phone: user.Phone,
		},
	}

	snapResp, errSnap := s.CreateTransaction(req)
	if errSnap != nil {
		// Transaksi PENDING yang gagal dapat token dibatalkan biar
		// tidak jadi sampah yang tidak mungkin settle
		config.DB.Model(&txRecord).Update("status", models.TxFailed)
		log.Printf("Snap gagal user %d: %v", userID, errSnap.GetMessage())
		utils.APIResponse(c, http.StatusBadGateway, false, "Gagal membuat sesi pembayaran", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Sesi pembayaran dibuat", gin.H{
		"order_id":     orderID,
		"snap_token":   snapResp.Token,
		"redirect_url": snapResp.RedirectURL,
	})
}

// Withdraw tarik dana. Saldo dikurangi DULU (pindah ke pending)
// biar tidak bisa ditarik dobel; kalau ditolak nanti tinggal
// dikembalikan.
func Withdraw(c *gin.Context) {
	userID := c.GetUint64("userID")

	var input models.WithdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	if input.Amount <= 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Nominal penarikan harus lebih dari 0", nil)
		return
	}
	if strings.TrimSpace(input.BankName) == "" || strings.TrimSpace(input.AccountName) == "" ||
		strings.TrimSpace(input.AccountNumber) == "" {
		utils.APIResponse(c, http.StatusBadRequest, false, "Data bank wajib diisi lengkap", nil)
		return
	}

	var wallet models.Wallet
	if err := config.DB.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Wallet tidak ditemukan", nil)
		return
	}

	if wallet.Available < input.Amount {
		utils.APIResponse(c, http.StatusBadRequest, false, "Saldo tidak cukup!", nil)
		return
	}

	txRecord := models.Transaction{
		UserID:        userID,
		Type:          models.TxTypeWithdrawal,
		Amount:        input.Amount,
		Status:        models.TxPending,
		Note:          "Penarikan ke " + input.BankName,
		BankName:      input.BankName,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Guard saldo diulang DI DALAM transaksi pakai kondisi SQL,
		// biar dua request barengan tidak sama-sama lolos cek di atas
		res := tx.Model(&models.Wallet{}).
			Where("user_id = ? AND available >= ?", userID, input.Amount).
			Updates(map[string]interface{}{
				"available": gorm.Expr("available - ?", input.Amount),
				"pending":   gorm.Expr("pending + ?", input.Amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInsufficientBalance // saldo keburu dipakai request lain
		}
		return tx.Create(&txRecord).Error
	})
	if err != nil {
		if errors.Is(err, errInsufficientBalance) {
			utils.APIResponse(c, http.StatusBadRequest, false, "Saldo tidak cukup!", nil)
			return
		}
		log.Printf("Withdraw gagal user %d: %v", userID, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Penarikan gagal diproses", nil)
		return
	}

	feed.PublishChange(context.Background(), config.RDB, userID)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err == nil && user.FCMToken != "" {
		go utils.SendNotification(user.FCMToken,
			"Penarikan Diproses",
			"Permintaan penarikan "+utils.FormatMinor(input.Amount)+" sedang diproses.",
			map[string]string{"type": "withdrawal_requested"},
		)
	}

	utils.APIResponse(c, http.StatusCreated, true, "Permintaan penarikan berhasil diajukan", txRecord)
}
