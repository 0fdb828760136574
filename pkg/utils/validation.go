package utils

import (
	"mime/multipart"
	"regexp"
	"strings"
)

// MaxProofImageSize batas upload bukti transfer crypto (5MB)
const MaxProofImageSize = 5 << 20

var (
	phoneRegex  = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`) // gaya E.164
	cardRegex   = regexp.MustCompile(`^\d{16}$`)
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`) // MM/YY
	cvcRegex    = regexp.MustCompile(`^\d{3}$`)
)

// ValidPhone cek format nomor HP internasional
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidCardNumber harus pas 16 digit (spasi/strip diabaikan)
func ValidCardNumber(number string) bool {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(number, " ", ""), "-", "")
	return cardRegex.MatchString(cleaned)
}

// ValidExpiry format MM/YY, bulan 01-12
func ValidExpiry(expiry string) bool {
	return expiryRegex.MatchString(expiry)
}

// ValidCVC pas 3 digit
func ValidCVC(cvc string) bool {
	return cvcRegex.MatchString(cvc)
}

// CardLast4 ambil 4 digit terakhir. Nomor penuh TIDAK boleh
// disimpan, jadi cuma ini yang keluar dari handler.
func CardLast4(number string) string {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(number, " ", ""), "-", "")
	if len(cleaned) < 4 {
		return ""
	}
	return cleaned[len(cleaned)-4:]
}

// ValidateCard cek semua field kartu sekaligus, urut sesuai form:
// nomor -> expiry -> cvc -> nama pemegang. Balikin pesan error
// pertama yang ketemu (string kosong = lolos).
func ValidateCard(number, expiry, cvc, holder string) string {
	if !ValidCardNumber(number) {
		return "Nomor kartu harus 16 digit"
	}
	if !ValidExpiry(expiry) {
		return "Format expiry harus MM/YY"
	}
	if !ValidCVC(cvc) {
		return "CVC harus 3 digit"
	}
	if strings.TrimSpace(holder) == "" {
		return "Nama pemegang kartu wajib diisi"
	}
	return ""
}

// ValidateProofImage cek upload bukti: wajib gambar, maksimal 5MB
func ValidateProofImage(fh *multipart.FileHeader) string {
	if fh == nil {
		return "Bukti transfer wajib diupload"
	}
	if fh.Size > MaxProofImageSize {
		return "Ukuran bukti transfer maksimal 5MB"
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "Bukti transfer harus berupa gambar"
	}
	return ""
}
