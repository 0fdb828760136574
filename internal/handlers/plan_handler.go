package handlers

import (
	"net/http"

	"investra-backend/internal/config"
	"investra-backend/internal/models"
	"investra-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetPlans daftar plan aktif. Publik, calon user boleh lihat
// harga sebelum daftar.
func GetPlans(c *gin.Context) {
	var plans []models.Plan
	if err := config.DB.Where("status = ?", models.PlanActive).
		Order("price ASC").Find(&plans).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil plan", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Daftar plan", plans)
}
