package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"investra-backend/internal/config"
	"investra-backend/internal/feed"
	"investra-backend/internal/models"
	"investra-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// presignProofURL variabel supaya test bisa nyetub presigner S3
var presignProofURL = utils.GenerateSignedURL

var validTxTypes = map[string]bool{
	models.TxTypeDeposit:    true,
	models.TxTypeWithdrawal: true,
	models.TxTypeCrypto:     true,
	models.TxTypePayout:     true,
}

// loadTransactions query transaksi user, filter tipe opsional,
// selalu terbaru duluan. Dipakai list, export, dan stream biar
// tiga-tiganya tidak bisa selisih urutan.
func loadTransactions(userID uint64, txType string) ([]models.Transaction, error) {
	query := config.DB.Where("user_id = ?", userID)
	if txType != "" && txType != "all" {
		query = query.Where("type = ?", txType)
	}

	var transactions []models.Transaction
	err := query.Order("created_at DESC, id DESC").Find(&transactions).Error
	return transactions, err
}

// GetTransactions riwayat transaksi dengan filter tipe + pagination
func GetTransactions(c *gin.Context) {
	userID := c.GetUint64("userID")

	txType := c.Query("type")
	if txType != "" && txType != "all" && !validTxTypes[txType] {
		utils.APIResponse(c, http.StatusBadRequest, false, "Tipe transaksi tidak dikenal", nil)
		return
	}

	transactions, err := loadTransactions(userID, txType)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil transaksi", nil)
		return
	}

	// Pagination ringan di atas hasil query (listnya per-user, kecil)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}
	start := (page - 1) * limit
	if start > len(transactions) {
		start = len(transactions)
	}
	end := start + limit
	if end > len(transactions) {
		end = len(transactions)
	}

	utils.APIResponse(c, http.StatusOK, true, "Riwayat transaksi", gin.H{
		"transactions": transactions[start:end],
		"total":        len(transactions),
		"page":         page,
	})
}

// GetTransactionDetail detail satu transaksi, termasuk field khusus
// per tipe. Bukti transfer crypto dibalikin sebagai presigned URL,
// bukan byte gambar.
func GetTransactionDetail(c *gin.Context) {
	userID := c.GetUint64("userID")
	txID := utils.StringToUint64(c.Param("id"))

	var txRecord models.Transaction
	if err := config.DB.Where("id = ? AND user_id = ?", txID, userID).First(&txRecord).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Transaksi tidak ditemukan", nil)
		return
	}

	resp := gin.H{"transaction": txRecord}
	if txRecord.ProofKey != "" {
		if url, err := presignProofURL(txRecord.ProofKey, 15*time.Minute); err == nil {
			resp["proof_url"] = url
		}
	}

	utils.APIResponse(c, http.StatusOK, true, "Detail transaksi", resp)
}

// ExportTransactionsCSV export set yang sedang difilter.
// Urutan kolom dikunci: date, type, amount, status, note.
// Set kosong DITOLAK dengan notice, bukan file kosong.
func ExportTransactionsCSV(c *gin.Context) {
	userID := c.GetUint64("userID")

	txType := c.Query("type")
	if txType != "" && txType != "all" && !validTxTypes[txType] {
		utils.APIResponse(c, http.StatusBadRequest, false, "Tipe transaksi tidak dikenal", nil)
		return
	}

	transactions, err := loadTransactions(userID, txType)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil transaksi", nil)
		return
	}

	if len(transactions) == 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Tidak ada transaksi untuk diexport", nil)
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"date", "type", "amount", "status", "note"})
	for _, t := range transactions {
		_ = w.Write([]string{
			t.CreatedAt.Format(time.RFC3339),
			t.Type,
			utils.FormatMinor(t.Amount),
			t.Status,
			t.Note,
		})
	}
	w.Flush()
}

// StreamTransactions feed live via SSE. Tiap ada perubahan, client
// dikirim snapshot daftar UTUH dan dia ganti state-nya bulat-bulat;
// tidak ada merge incremental. Subscription ditutup waktu client
// disconnect.
func StreamTransactions(c *gin.Context) {
	userID := c.GetUint64("userID")
	ctx := c.Request.Context()

	// Filter tipe dicek sama ketatnya dengan list & export; tipe asal
	// jangan jadi stream kosong diam-diam
	txType := c.Query("type")
	if txType != "" && txType != "all" && !validTxTypes[txType] {
		utils.APIResponse(c, http.StatusBadRequest, false, "Tipe transaksi tidak dikenal", nil)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	sendSnapshot := func() {
		transactions, err := loadTransactions(userID, txType)
		if err != nil {
			return // snapshot berikutnya yang benerin
		}
		c.SSEvent("snapshot", transactions)
		c.Writer.Flush()
	}

	// Snapshot awal selalu dikirim, ada redis atau tidak
	sendSnapshot()

	sub := feed.Subscribe(ctx, config.RDB, userID)
	if sub == nil {
		// Redis mati: degradasi jadi sekali kirim, client masih
		// bisa polling endpoint list biasa
		return
	}
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			sendSnapshot()
		}
	}
}
