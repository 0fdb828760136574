package handlers_test

import (
	"net/http"
	"testing"

	"investra-backend/internal/config"
	"investra-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileShowsWalletBalance(t *testing.T) {
	r := setupRouter(t)
	user := registerUser(t, r, "budi@mail.com", "")
	token := tokenFor(t, user.ID)
	setBalance(t, user.ID, 75_000_00)

	w := doJSON(t, r, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := parseBody(t, w)["data"].(map[string]interface{})
	profile := data["profile"].(map[string]interface{})
	wallet := data["wallet"].(map[string]interface{})

	assert.Equal(t, "budi@mail.com", profile["email"])
	assert.Len(t, profile["referral_code"], 8)
	assert.EqualValues(t, 75_000_00, wallet["available"])
	// Saldo CUMA ada di wallet, profil tidak bawa angka sendiri
	_, hasBalance := profile["balance"]
	assert.False(t, hasBalance)
}

func TestUpdateProfilePartial(t *testing.T) {
	r := setupRouter(t)
	user := registerUser(t, r, "budi@mail.com", "")
	token := tokenFor(t, user.ID)

	w := doJSON(t, r, http.MethodPut, "/api/v1/profile", token, gin.H{
		"country": "Indonesia",
		"city":    "Bandung",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, config.DB.First(&updated, user.ID).Error)
	assert.Equal(t, "Indonesia", updated.Country)
	assert.Equal(t, "Bandung", updated.City)
	assert.Equal(t, "Test User", updated.FullName, "field yang tidak dikirim jangan disentuh")
}

func TestUpdateProfileRejectsBadPhone(t *testing.T) {
	r := setupRouter(t)
	user := registerUser(t, r, "budi@mail.com", "")
	token := tokenFor(t, user.ID)

	w := doJSON(t, r, http.MethodPut, "/api/v1/profile", token, gin.H{"phone": "0811-bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardProfileMissingIsRecoverable(t *testing.T) {
	r := setupRouter(t)
	user := registerUser(t, r, "budi@mail.com", "")
	token := tokenFor(t, user.ID)

	// Profil "hilang" (soft delete), token masih sah
	require.NoError(t, config.DB.Delete(&models.User{}, user.ID).Error)

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["recoverable"])

	// Recovery mulihin profil + wallet
	w = doJSON(t, r, http.MethodPost, "/api/v1/profile/recover", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoverProfileRebuildsMissingWallet(t *testing.T) {
	r := setupRouter(t)
	user := registerUser(t, r, "budi@mail.com", "")
	token := tokenFor(t, user.ID)

	require.NoError(t, config.DB.Where("user_id = ?", user.ID).Delete(&models.Wallet{}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/v1/profile/recover", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var wallet models.Wallet
	require.NoError(t, config.DB.Where("user_id = ?", user.ID).First(&wallet).Error)
	assert.Zero(t, wallet.Available)
}
