// Package feed nge-push sinyal "transaksi user X berubah" lewat
// redis pub/sub. Consumer (endpoint SSE) tiap dapat sinyal ambil ulang
// daftar transaksi dari DB lalu kirim snapshot utuh ke client,
// tidak ada merge incremental, snapshot terakhir selalu menang.
package feed

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

func channelFor(userID uint64) string {
	return fmt.Sprintf("feed:tx:%d", userID)
}

// PublishChange kasih tau subscriber kalau daftar transaksi user
// berubah. Best-effort: tanpa redis, write tetap sukses, cuma
// stream-nya saja yang tidak dapat push.
func PublishChange(ctx context.Context, rdb *redis.Client, userID uint64) {
	if rdb == nil {
		return
	}
	if err := rdb.Publish(ctx, channelFor(userID), "changed").Err(); err != nil {
		log.Printf("Gagal publish feed user %d: %v", userID, err)
	}
}

// Subscribe buka subscription untuk satu user. Caller WAJIB Close()
// waktu client disconnect biar goroutine redis-nya tidak bocor.
func Subscribe(ctx context.Context, rdb *redis.Client, userID uint64) *redis.PubSub {
	if rdb == nil {
		return nil
	}
	return rdb.Subscribe(ctx, channelFor(userID))
}
