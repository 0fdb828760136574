// Package worker bagi hasil investasi ("drop"): tiap interval plan,
// payout_per_drop masuk ke wallet user sampai drop_count tercapai,
// lalu investasinya ditandai Completed.
package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"investra-backend/internal/config"
	"investra-backend/internal/feed"
	"investra-backend/internal/models"
	"investra-backend/pkg/utils"

	"gorm.io/gorm"
)

// StartDropWorker jalanin loop pembagian drop di background.
// Berhenti waktu ctx dibatalkan (graceful shutdown).
func StartDropWorker(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("Drop worker berhenti")
				return
			case <-ticker.C:
				paid, err := ProcessDueDrops(config.DB, time.Now())
				if err != nil {
					log.Printf("Drop worker error: %v", err)
				}
				if paid > 0 {
					log.Printf("Drop worker: %d drop dibayar", paid)
				}
			}
		}
	}()
}

// ProcessDueDrops bayar semua drop yang sudah jatuh tempo.
// Satu drop = satu transaksi DB: saldo nambah, row payout dibuat,
// counter investasi maju. Balikin jumlah drop yang dibayar.
func ProcessDueDrops(db *gorm.DB, now time.Time) (int, error) {
	var due []models.Investment
	if err := db.Where("status = ? AND next_drop_at IS NOT NULL AND next_drop_at <= ?",
		models.InvestmentActive, now).Find(&due).Error; err != nil {
		return 0, err
	}

	paid := 0
	for i := range due {
		inv := &due[i]

		// Satu investasi bisa punya beberapa drop nunggak kalau
		// worker sempat mati; diproses satu-satu sampai habis
		for inv.Status == models.InvestmentActive && inv.NextDropAt != nil && !inv.NextDropAt.After(now) {
			if err := payOneDrop(db, inv); err != nil {
				log.Printf("Gagal bayar drop investasi %d: %v", inv.ID, err)
				break // investasi lain tetap lanjut
			}
			paid++
			notifyDrop(db, inv)
		}
	}
	return paid, nil
}

func payOneDrop(db *gorm.DB, inv *models.Investment) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).Where("user_id = ?", inv.UserID).
			Updates(map[string]interface{}{
				"available":    gorm.Expr("available + ?", inv.PayoutPerDrop),
				"total_earned": gorm.Expr("total_earned + ?", inv.PayoutPerDrop),
			})
		if res.Error != nil {
			return res.Error
		}
		// Tanpa wallet jangan lanjut bikin row payout; rollback biar
		// tidak ada payout yang tercatat tapi saldonya tidak masuk
		if res.RowsAffected == 0 {
			return fmt.Errorf("wallet user %d tidak ditemukan", inv.UserID)
		}

		if err := tx.Create(&models.Transaction{
			UserID: inv.UserID,
			Type:   models.TxTypePayout,
			Amount: inv.PayoutPerDrop,
			Status: models.TxSuccess,
			Note:   "Drop " + inv.PlanName,
		}).Error; err != nil {
			return err
		}

		inv.DropsPaid++
		if inv.DropsPaid >= inv.DropCount {
			inv.Status = models.InvestmentCompleted
			inv.NextDropAt = nil
		} else {
			interval := inv.DropIntervalHours
			if interval <= 0 {
				interval = 24
			}
			next := inv.NextDropAt.Add(time.Duration(interval) * time.Hour)
			inv.NextDropAt = &next
		}

		return tx.Model(&models.Investment{}).Where("id = ?", inv.ID).
			Updates(map[string]interface{}{
				"drops_paid":   inv.DropsPaid,
				"status":       inv.Status,
				"next_drop_at": inv.NextDropAt,
			}).Error
	})
}

func notifyDrop(db *gorm.DB, inv *models.Investment) {
	feed.PublishChange(context.Background(), config.RDB, inv.UserID)

	var user models.User
	if err := db.First(&user, inv.UserID).Error; err == nil && user.FCMToken != "" {
		go utils.SendNotification(user.FCMToken,
			"Drop Cair",
			"Payout "+utils.FormatMinor(inv.PayoutPerDrop)+" dari plan "+inv.PlanName+" sudah masuk.",
			map[string]string{"type": "drop_paid"},
		)
	}
}
