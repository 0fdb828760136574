package handlers

import (
	"net/http"
	"strings"

	"investra-backend/internal/config"
	"investra-backend/internal/models"
	"investra-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// getOrCreateWallet wallet pasti ada untuk user yang sah; kalau
// hilang (data lama / recovery) dibuatkan kosong di tempat
func getOrCreateWallet(userID uint64) (models.Wallet, error) {
	var wallet models.Wallet
	err := config.DB.Where("user_id = ?", userID).First(&wallet).Error
	if err == nil {
		return wallet, nil
	}

	wallet = models.Wallet{UserID: userID}
	if err := config.DB.Create(&wallet).Error; err != nil {
		return wallet, err
	}
	return wallet, nil
}

// GetProfile data user yang sedang login + saldo dari wallet.
// Saldo yang ditampilkan SELALU wallet.available, profil tidak
// punya angka saldo sendiri.
func GetProfile(c *gin.Context) {
	userID := c.GetUint64("userID")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Profil tidak ditemukan", nil)
		return
	}

	wallet, err := getOrCreateWallet(userID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil wallet", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Data profil berhasil diambil", gin.H{
		"profile": user,
		"wallet":  wallet,
	})
}

// UpdateProfile partial update: cuma field yang diisi yang disentuh
func UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("userID")

	var input models.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(input.FullName) != "" {
		updates["full_name"] = input.FullName
	}
	if input.Phone != "" {
		if !utils.ValidPhone(input.Phone) {
			utils.APIResponse(c, http.StatusBadRequest, false, "Format nomor HP tidak valid", nil)
			return
		}
		updates["phone_number"] = input.Phone
	}
	if input.Country != "" {
		updates["country"] = input.Country
	}
	if input.City != "" {
		updates["city"] = input.City
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}

	if len(updates) == 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Tidak ada field yang diubah", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Profil tidak ditemukan", nil)
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal update profil", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Profil berhasil diupdate", user)
}

// RecoverProfile jalur pemulihan "profil hilang" dari dashboard:
// token masih sah tapi record user/wallet-nya tidak ada. Restore
// soft-delete kalau ada, wallet dibuat ulang kosong kalau hilang.
func RecoverProfile(c *gin.Context) {
	userID := c.GetUint64("userID")

	var user models.User
	err := config.DB.Unscoped().First(&user, userID).Error
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Akun tidak ditemukan, silakan register ulang", nil)
		return
	}

	if user.DeletedAt.Valid {
		if err := config.DB.Unscoped().Model(&user).Update("deleted_at", nil).Error; err != nil {
			utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal memulihkan profil", nil)
			return
		}
		user.DeletedAt.Valid = false
	}

	wallet, err := getOrCreateWallet(userID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal memulihkan wallet", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Profil berhasil dipulihkan", gin.H{
		"profile": user,
		"wallet":  wallet,
	})
}
