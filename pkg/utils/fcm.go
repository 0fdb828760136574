package utils

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

var fcmClient *messaging.Client

// InitFCM inisialisasi Firebase Cloud Messaging.
// Kalau credential tidak ada, jalan terus tanpa push notif,
// notif itu pelengkap, bukan alasan server gagal start.
func InitFCM() {
	credPath := os.Getenv("FCM_CREDENTIALS_FILE")
	if credPath == "" {
		log.Println("FCM_CREDENTIALS_FILE kosong, push notification dimatikan")
		return
	}

	opt := option.WithCredentialsFile(credPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Printf("Gagal init firebase app: %v", err)
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("Gagal ambil messaging client: %v", err)
		return
	}

	fcmClient = client
	log.Println("Firebase Cloud Messaging ready")
}

// SendNotification kirim pesan ke satu device token.
// Caller yang urus ambil token dari DB; utils murni urusan Firebase.
func SendNotification(token string, title string, body string, data map[string]string) error {
	if fcmClient == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := fcmClient.Send(context.Background(), message); err != nil {
		log.Printf("Gagal kirim notifikasi: %s", err)
		return err
	}
	return nil
}
