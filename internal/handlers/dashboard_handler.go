package handlers

import (
	"net/http"

	"investra-backend/internal/config"
	"investra-backend/internal/models"
	"investra-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboard ringkasan halaman utama: profil, angka wallet, dan
// daftar investasi. Urutan investasi DIKUNCI created_at DESC di
// query, jangan pernah ngandelin urutan hasil fetch.
func GetDashboard(c *gin.Context) {
	userID := c.GetUint64("userID")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		// Profil hilang itu kondisi khusus: frontend nampilin layar
		// recovery yang manggil POST /profile/recover
		utils.APIResponse(c, http.StatusNotFound, false, "Profil tidak ditemukan", gin.H{
			"recoverable": true,
		})
		return
	}

	wallet, err := getOrCreateWallet(userID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil wallet", nil)
		return
	}

	var investments []models.Investment
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&investments).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil investasi", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Data dashboard", gin.H{
		"profile":     user,
		"wallet":      wallet,
		"investments": investments,
	})
}
