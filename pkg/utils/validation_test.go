package utils

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	valid := []string{"+628123456789", "628123456789", "+14155552671", "19", "+9715012345678"}
	for _, p := range valid {
		assert.True(t, ValidPhone(p), p)
	}

	invalid := []string{
		"",
		"0811222333",        // mulai dari nol
		"+08123",            // nol setelah plus
		"8",                 // kependekan
		"+6281234567890123", // 16 digit, kepanjangan
		"62-812-345",        // ada strip
		"abc123",
	}
	for _, p := range invalid {
		assert.False(t, ValidPhone(p), p)
	}
}

func TestValidCardNumber(t *testing.T) {
	assert.True(t, ValidCardNumber("4111111111111111"))
	assert.True(t, ValidCardNumber("4111 1111 1111 1111"), "spasi diabaikan")
	assert.True(t, ValidCardNumber("4111-1111-1111-1111"), "strip diabaikan")

	assert.False(t, ValidCardNumber("411111111111111"), "15 digit")
	assert.False(t, ValidCardNumber("41111111111111111"), "17 digit")
	assert.False(t, ValidCardNumber("4111a11111111111"))
	assert.False(t, ValidCardNumber(""))
}

func TestValidExpiry(t *testing.T) {
	assert.True(t, ValidExpiry("01/26"))
	assert.True(t, ValidExpiry("12/30"))

	assert.False(t, ValidExpiry("13/26"), "bulan 13")
	assert.False(t, ValidExpiry("00/26"), "bulan 00")
	assert.False(t, ValidExpiry("1/26"))
	assert.False(t, ValidExpiry("0126"))
	assert.False(t, ValidExpiry("01/2026"))
}

func TestValidCVC(t *testing.T) {
	assert.True(t, ValidCVC("123"))
	assert.False(t, ValidCVC("12"))
	assert.False(t, ValidCVC("1234"))
	assert.False(t, ValidCVC("12a"))
}

func TestCardLast4(t *testing.T) {
	assert.Equal(t, "1111", CardLast4("4111 1111 1111 1111"))
	assert.Equal(t, "4242", CardLast4("4242424242424242"))
	assert.Equal(t, "", CardLast4("12"))
}

func TestValidateCardFirstErrorWins(t *testing.T) {
	// Urutan pesan: nomor -> expiry -> cvc -> nama
	assert.Equal(t, "Nomor kartu harus 16 digit", ValidateCard("123", "bad", "bad", ""))
	assert.Equal(t, "Format expiry harus MM/YY", ValidateCard("4111111111111111", "bad", "bad", ""))
	assert.Equal(t, "CVC harus 3 digit", ValidateCard("4111111111111111", "12/27", "bad", ""))
	assert.Equal(t, "Nama pemegang kartu wajib diisi", ValidateCard("4111111111111111", "12/27", "123", " "))
	assert.Equal(t, "", ValidateCard("4111111111111111", "12/27", "123", "Budi"))
}

func proofHeader(size int64, contentType string) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: "bukti.png", Size: size, Header: h}
}

func TestValidateProofImage(t *testing.T) {
	assert.Equal(t, "", ValidateProofImage(proofHeader(1024, "image/png")))
	assert.Equal(t, "", ValidateProofImage(proofHeader(MaxProofImageSize, "image/jpeg")), "pas 5MB masih boleh")

	assert.NotEqual(t, "", ValidateProofImage(nil))
	assert.Equal(t, "Ukuran bukti transfer maksimal 5MB", ValidateProofImage(proofHeader(MaxProofImageSize+1, "image/png")))
	assert.Equal(t, "Bukti transfer harus berupa gambar", ValidateProofImage(proofHeader(1024, "application/pdf")))
}
