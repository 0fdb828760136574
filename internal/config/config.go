package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"investra-backend/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB global biar handler tinggal pakai config.DB (gaya lama, tapi praktis)
var DB *gorm.DB

// RDB koneksi redis untuk feed transaksi live
var RDB *redis.Client

// Env ambil environment variable dengan nilai default
func Env(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// ConnectDB buka koneksi MySQL via GORM lalu migrasi semua tabel
func ConnectDB() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		// Rakit DSN dari potongan env kalau DATABASE_DSN tidak diisi
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			Env("DB_USER", "root"),
			Env("DB_PASS", ""),
			Env("DB_HOST", "127.0.0.1"),
			Env("DB_PORT", "3306"),
			Env("DB_NAME", "investra"),
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Gagal konek database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Gagal migrasi database: %v", err)
	}

	DB = db
	log.Println("Database connected & migrated")
}

// Migrate jalankan auto-migrate + seed plan default.
// Dipisah dari ConnectDB biar bisa dipakai juga di test (sqlite in-memory).
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Plan{},
		&models.Investment{},
		&models.Transaction{},
		&models.ReferralCredit{},
		&models.RefreshToken{},
	)
	if err != nil {
		return err
	}
	return seedPlans(db)
}

// seedPlans isi plan bawaan kalau tabel masih kosong
func seedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Nominal dalam minor units (sen)
	plans := []models.Plan{
		{Name: "Starter", Price: 50_000_00, PayoutPerDrop: 2_500_00, DropCount: 24, TotalReturn: 60_000_00, DropIntervalHours: 24, Status: models.PlanActive},
		{Name: "Growth", Price: 200_000_00, PayoutPerDrop: 11_000_00, DropCount: 22, TotalReturn: 242_000_00, DropIntervalHours: 24, Status: models.PlanActive},
		{Name: "Premium", Price: 500_000_00, PayoutPerDrop: 30_000_00, DropCount: 20, TotalReturn: 600_000_00, DropIntervalHours: 24, Status: models.PlanActive},
	}
	return db.Create(&plans).Error
}

// ConnectRedis konek ke redis untuk pub/sub feed, dengan retry
// karena di deployment redis kadang telat siap duluan
func ConnectRedis(ctx context.Context) {
	addr := Env("REDIS_ADDR", "localhost:6379")

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})

		if _, err := client.Ping(ctx).Result(); err == nil {
			RDB = client
			log.Println("Redis connected:", addr)
			return
		}

		log.Printf("Redis belum siap (attempt %d/%d), coba lagi...", i+1, maxRetries)
		time.Sleep(time.Duration(i+1) * time.Second)
	}

	// Feed live jalan best-effort; tanpa redis API tetap hidup,
	// cuma stream transaksi tidak dapat update push.
	log.Println("Warning: redis tidak tersedia, fitur live feed mati")
}
