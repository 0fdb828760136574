package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"investra-backend/internal/config"
	"investra-backend/internal/models"
	"investra-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// defaultReferralBonus bonus tetap per signup yang pakai kode
// referral, dalam minor units. Bisa dioverride lewat env.
const defaultReferralBonus = int64(25_000_00)

func referralBonus() int64 {
	if v := os.Getenv("REFERRAL_BONUS"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultReferralBonus
}

// Register daftar akun baru.
// Urutan validasi sengaja dikunci: field wajib -> password cocok ->
// panjang password -> format nomor HP. Frontend lama nampilin error
// satu-satu dengan urutan ini.
func Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	// 1. Field wajib
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" ||
		input.Password == "" || input.ConfirmPassword == "" {
		utils.APIResponse(c, http.StatusBadRequest, false, "Nama, email, dan password wajib diisi", nil)
		return
	}

	// 2. Password harus cocok
	if input.Password != input.ConfirmPassword {
		utils.APIResponse(c, http.StatusBadRequest, false, "Konfirmasi password tidak cocok", nil)
		return
	}

	// 3. Minimal 6 karakter
	if len(input.Password) < 6 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Password minimal 6 karakter", nil)
		return
	}

	// 4. Nomor HP opsional, tapi kalau diisi harus bener
	if input.Phone != "" && !utils.ValidPhone(input.Phone) {
		utils.APIResponse(c, http.StatusBadRequest, false, "Format nomor HP tidak valid", nil)
		return
	}

	// Cek duplikat duluan biar pesannya jelas, bukan error generik
	var existing int64
	config.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&existing)
	if existing > 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Email sudah terdaftar!", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal memproses password", nil)
		return
	}

	user := models.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Phone:        input.Phone,
		Country:      input.Country,
		ReferredBy:   input.ReferralCode,
	}

	// User + wallet + bonus referral dibuat dalam SATU transaksi DB.
	// Dulu ini tiga write lepas ke Firestore dan bisa nyangkut di tengah.
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Kode referral unik; tabrakan 36^8 jarang banget tapi tetap diulang
		for attempt := 0; attempt < 5; attempt++ {
			user.ReferralCode = utils.GenerateReferralCode()
			var n int64
			if err := tx.Model(&models.User{}).Where("referral_code = ?", user.ReferralCode).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				break
			}
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.Wallet{UserID: user.ID}).Error; err != nil {
			return err
		}

		// Bonus referral: kode unik per user, jadi paling banyak satu
		// referrer yang dapat. Kode tidak ketemu bukan error, signup
		// tetap jalan tanpa bonus.
		if input.ReferralCode != "" {
			var referrer models.User
			if err := tx.Where("referral_code = ?", input.ReferralCode).First(&referrer).Error; err == nil {
				bonus := referralBonus()
				res := tx.Model(&models.Wallet{}).Where("user_id = ?", referrer.ID).
					Update("available", gorm.Expr("available + ?", bonus))
				if res.Error != nil {
					return res.Error
				}
				if err := tx.Create(&models.ReferralCredit{
					ReferrerID:     referrer.ID,
					ReferredUserID: user.ID,
					Amount:         bonus,
				}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Register gagal: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Registrasi gagal, coba lagi", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Registrasi berhasil! Silakan login.", gin.H{
		"id":            user.ID,
		"full_name":     user.FullName,
		"email":         user.Email,
		"referral_code": user.ReferralCode,
	})
}

// Login email + password
func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Email atau password salah", nil)
		return
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Email atau password salah", nil)
		return
	}

	// Gate verifikasi email: dimatikan default, nyalain lewat env.
	// (Dua varian frontend lama beda perilaku, ini rekonsiliasinya.)
	if os.Getenv("REQUIRE_VERIFIED_EMAIL") == "true" && !user.IsVerified {
		utils.APIResponse(c, http.StatusForbidden, false, "Email belum diverifikasi", nil)
		return
	}

	// Simpan token FCM kalau frontend kirim
	if input.FCMToken != "" {
		config.DB.Model(&user).Update("fcm_token", input.FCMToken)
	}

	issueTokens(c, &user)
}

// OAuthLogin login via provider (Google dkk).
// Profil yang belum ada DITOLAK, tidak dibuat diam-diam. Registrasi
// yang pegang urusan wallet & kode referral.
func OAuthLogin(c *gin.Context) {
	var input models.OAuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	// TODO: verifikasi id_token ke JWKS provider, sekarang masih
	// percaya email dari gateway di depan
	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusForbidden, false, "Akun belum terdaftar. Silakan register dulu.", nil)
		return
	}

	if input.FCMToken != "" {
		config.DB.Model(&user).Update("fcm_token", input.FCMToken)
	}

	issueTokens(c, &user)
}

// issueTokens kirim access + refresh token plus ringkasan user
func issueTokens(c *gin.Context, user *models.User) {
	accessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal generate token", nil)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(config.DB, user.ID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal generate token", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Login berhasil", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":            user.ID,
			"full_name":     user.FullName,
			"email":         user.Email,
			"referral_code": user.ReferralCode,
		},
	})
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh tukar refresh token lama dengan pasangan token baru.
// Token lama langsung dicabut (rotasi) biar tidak bisa dipakai dua kali.
func Refresh(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "refresh_token wajib diisi", nil)
		return
	}

	rt, err := utils.ValidateRefreshToken(config.DB, input.RefreshToken)
	if err != nil {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Refresh token tidak valid", nil)
		return
	}

	var newJTI string
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(rt).Update("revoked", true).Error; err != nil {
			return err
		}
		jti, err := utils.GenerateRefreshToken(tx, rt.UserID)
		if err != nil {
			return err
		}
		newJTI = jti
		return nil
	})
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	accessToken, err := utils.GenerateAccessToken(rt.UserID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Token diperbarui", gin.H{
		"access_token":  accessToken,
		"refresh_token": newJTI,
	})
}

// Logout cabut refresh token yang dikirim
func Logout(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "refresh_token wajib diisi", nil)
		return
	}

	config.DB.Model(&models.RefreshToken{}).
		Where("jti = ?", input.RefreshToken).
		Update("revoked", true)

	utils.APIResponse(c, http.StatusOK, true, "Logout berhasil", nil)
}

// SendVerification terbitkan token verifikasi email untuk user login.
// TODO: kirim lewat SMTP; sementara token dibalikin di response
// sampai integrasi mailer masuk
func SendVerification(c *gin.Context) {
	userID := c.GetUint64("userID")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User tidak ditemukan", nil)
		return
	}
	if user.IsVerified {
		utils.APIResponse(c, http.StatusBadRequest, false, "Email sudah terverifikasi", nil)
		return
	}

	token, err := utils.GenerateVerifyToken(user.ID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal generate token verifikasi", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Token verifikasi dibuat", gin.H{
		"verify_token": token,
	})
}

type verifyInput struct {
	Token string `json:"token" binding:"required"`
}

// VerifyEmail tandai email terverifikasi dari token
func VerifyEmail(c *gin.Context) {
	var input verifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "token wajib diisi", nil)
		return
	}

	userID, err := utils.ParseVerifyToken(input.Token)
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Token verifikasi tidak valid", nil)
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("is_verified", true).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal update status verifikasi", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Email berhasil diverifikasi", nil)
}
