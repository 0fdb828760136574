package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"investra-backend/internal/config"
	"investra-backend/internal/feed"
	"investra-backend/internal/models"
	"investra-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// uploadProofImage variabel supaya test bisa nyetub S3 tanpa
// credential beneran
var uploadProofImage = utils.UploadProofImage

// purchasePlan transaksi pembayaran + record investasi dibuat dalam
// SATU transaksi DB, urutannya: transaksi dulu, investasi nunjuk ke
// ID transaksinya. Dulu ini dua write lepas dan bisa ninggalin
// transaksi yatim kalau write kedua gagal.
func purchasePlan(userID uint64, plan *models.Plan, txRecord *models.Transaction) (*models.Investment, error) {
	var investment *models.Investment

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txRecord).Error; err != nil {
			return err
		}

		next := time.Now().Add(time.Duration(plan.DropIntervalHours) * time.Hour)
		investment = &models.Investment{
			UserID:            userID,
			PlanID:            plan.ID,
			PlanName:          plan.Name,
			Amount:            plan.Price,
			PayoutPerDrop:     plan.PayoutPerDrop,
			DropCount:         plan.DropCount,
			DropIntervalHours: plan.DropIntervalHours,
			TotalReturn:       plan.TotalReturn,
			TransactionID:     txRecord.ID,
			Status:            models.InvestmentActive,
			NextDropAt:        &next,
		}
		return tx.Create(investment).Error
	})
	if err != nil {
		return nil, err
	}
	return investment, nil
}

func notifyPurchase(userID uint64, plan *models.Plan) {
	feed.PublishChange(context.Background(), config.RDB, userID)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err == nil && user.FCMToken != "" {
		go utils.SendNotification(user.FCMToken,
			"Investasi Aktif",
			"Plan "+plan.Name+" kamu sudah aktif. Drop pertama cair dalam 24 jam.",
			map[string]string{"type": "investment_created"},
		)
	}
}

// CardPayment beli plan pakai kartu. Pembayarannya simulasi
// (langsung settle), tapi validasi & penyimpanan datanya serius:
// yang masuk DB cuma last 4 digit + expiry.
func CardPayment(c *gin.Context) {
	userID := c.GetUint64("userID")

	var input models.CardPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	var plan models.Plan
	if err := config.DB.Where("status = ?", models.PlanActive).First(&plan, input.PlanID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Plan tidak ditemukan", nil)
		return
	}

	// Validasi kartu: nomor -> expiry -> cvc -> nama
	if msg := utils.ValidateCard(input.CardNumber, input.Expiry, input.CVC, input.HolderName); msg != "" {
		utils.APIResponse(c, http.StatusBadRequest, false, msg, nil)
		return
	}
	if !input.AcceptTerms {
		utils.APIResponse(c, http.StatusBadRequest, false, "Kamu harus menyetujui syarat & ketentuan", nil)
		return
	}

	txRecord := &models.Transaction{
		UserID:     userID,
		Type:       models.TxTypeDeposit,
		Amount:     plan.Price,
		Status:     models.TxSuccess,
		Note:       "Pembelian plan " + plan.Name,
		CardLast4:  utils.CardLast4(input.CardNumber),
		CardExpiry: input.Expiry,
	}

	investment, err := purchasePlan(userID, &plan, txRecord)
	if err != nil {
		log.Printf("Card payment gagal user %d: %v", userID, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Pembayaran gagal diproses", nil)
		return
	}

	notifyPurchase(userID, &plan)

	utils.APIResponse(c, http.StatusCreated, true, "Pembayaran berhasil, investasi aktif", gin.H{
		"transaction": txRecord,
		"investment":  investment,
	})
}

// CryptoPayment beli plan via transfer crypto: wajib tx hash +
// bukti transfer (gambar, maks 5MB). Gambarnya naik ke S3, DB cuma
// simpan object key-nya. Jangan pernah embed byte file di record.
func CryptoPayment(c *gin.Context) {
	userID := c.GetUint64("userID")

	planID := utils.StringToUint64(c.PostForm("plan_id"))
	txHash := strings.TrimSpace(c.PostForm("tx_hash"))
	currency := strings.ToUpper(strings.TrimSpace(c.PostForm("currency")))
	acceptTerms := c.PostForm("accept_terms") == "true"

	var plan models.Plan
	if err := config.DB.Where("status = ?", models.PlanActive).First(&plan, planID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Plan tidak ditemukan", nil)
		return
	}

	if txHash == "" {
		utils.APIResponse(c, http.StatusBadRequest, false, "Transaction hash wajib diisi", nil)
		return
	}

	proofFile, err := c.FormFile("proof")
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Bukti transfer wajib diupload", nil)
		return
	}
	if msg := utils.ValidateProofImage(proofFile); msg != "" {
		utils.APIResponse(c, http.StatusBadRequest, false, msg, nil)
		return
	}

	if !acceptTerms {
		utils.APIResponse(c, http.StatusBadRequest, false, "Kamu harus menyetujui syarat & ketentuan", nil)
		return
	}

	src, err := proofFile.Open()
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal membaca bukti transfer", nil)
		return
	}
	defer src.Close()

	proofKey, err := uploadProofImage(c.Request.Context(), userID,
		proofFile.Filename, src, proofFile.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Upload bukti gagal user %d: %v", userID, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal upload bukti transfer", nil)
		return
	}

	txRecord := &models.Transaction{
		UserID:   userID,
		Type:     models.TxTypeCrypto,
		Amount:   plan.Price,
		Currency: currency,
		Status:   models.TxSuccess,
		Note:     "Pembelian plan " + plan.Name + " via crypto",
		TxHash:   txHash,
		ProofKey: proofKey,
	}

	investment, err := purchasePlan(userID, &plan, txRecord)
	if err != nil {
		log.Printf("Crypto payment gagal user %d: %v", userID, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Pembayaran gagal diproses", nil)
		return
	}

	notifyPurchase(userID, &plan)

	utils.APIResponse(c, http.StatusCreated, true, "Pembayaran dicatat, investasi aktif", gin.H{
		"transaction": txRecord,
		"investment":  investment,
	})
}

// MidtransNotification body webhook; Midtrans kirim banyak field,
// kita cuma butuh ini
type MidtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	OrderID           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
}

// HandlePaymentNotification webhook settlement deposit gateway.
// Saldo baru nambah DI SINI, bukan waktu user klik bayar.
func HandlePaymentNotification(c *gin.Context) {
	var notification MidtransNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid JSON", nil)
		return
	}

	// Mapping status Midtrans -> status internal
	var newStatus string
	switch notification.TransactionStatus {
	case "capture":
		if notification.FraudStatus == "accept" {
			newStatus = models.TxSuccess
		} else {
			newStatus = models.TxPending // masih diverifikasi bank
		}
	case "settlement":
		newStatus = models.TxSuccess
	case "deny", "cancel", "expire":
		newStatus = models.TxFailed
	default:
		newStatus = models.TxPending
	}

	log.Printf("[Webhook] Midtrans order=%s status=%s fraud=%s -> %s",
		notification.OrderID, notification.TransactionStatus, notification.FraudStatus, newStatus)

	var txRecord models.Transaction
	if err := config.DB.Where("order_id = ?", notification.OrderID).First(&txRecord).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Order tidak ditemukan", nil)
		return
	}

	// Idempoten: cuma transaksi yang masih PENDING yang diproses.
	// Midtrans suka kirim notifikasi yang sama berkali-kali.
	if txRecord.Status != models.TxPending || newStatus == models.TxPending {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&txRecord).Update("status", newStatus).Error; err != nil {
			return err
		}
		if newStatus == models.TxSuccess {
			// Kredit saldo sekali, di transaksi yang sama dengan
			// perubahan status
			return tx.Model(&models.Wallet{}).Where("user_id = ?", txRecord.UserID).
				Update("available", gorm.Expr("available + ?", txRecord.Amount)).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("[Webhook] Gagal settle order %s: %v", notification.OrderID, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal update transaksi", nil)
		return
	}

	feed.PublishChange(context.Background(), config.RDB, txRecord.UserID)

	if newStatus == models.TxSuccess {
		var user models.User
		if err := config.DB.First(&user, txRecord.UserID).Error; err == nil && user.FCMToken != "" {
			go utils.SendNotification(user.FCMToken,
				"Deposit Berhasil",
				"Deposit "+utils.FormatMinor(txRecord.Amount)+" sudah masuk ke saldo kamu.",
				map[string]string{"type": "deposit_settled", "order_id": txRecord.OrderID},
			)
		}
	}

	// Wajib balas 200 biar Midtrans berhenti retry
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
