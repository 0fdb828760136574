package utils

import "crypto/rand"

const referralCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode bikin kode referral 8 karakter alfanumerik.
// Pakai crypto/rand biar kodenya tidak ketebak dari kode user lain.
func GenerateReferralCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read dari crypto hampir mustahil gagal; kalau sampai
		// gagal juga, biarin panic daripada kasih kode yang ketebak
		panic(err)
	}
	for i, b := range buf {
		buf[i] = referralCharset[int(b)%len(referralCharset)]
	}
	return string(buf)
}
