package handlers_test

import (
	"net/http"
	"testing"

	"investra-backend/internal/config"
	"investra-backend/internal/handlers"
	"investra-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidationOrder(t *testing.T) {
	r := setupRouter(t)

	cases := []struct {
		name    string
		body    gin.H
		wantMsg string
	}{
		{
			name:    "field wajib kosong",
			body:    gin.H{"email": "a@b.com", "password": "secret123", "confirm_password": "secret123"},
			wantMsg: "Nama, email, dan password wajib diisi",
		},
		{
			name: "password tidak cocok",
			body: gin.H{
				"full_name": "Budi", "email": "a@b.com",
				"password": "secret123", "confirm_password": "secret124",
			},
			wantMsg: "Konfirmasi password tidak cocok",
		},
		{
			name: "password pendek, dicek SETELAH kecocokan",
			body: gin.H{
				"full_name": "Budi", "email": "a@b.com",
				"password": "abc", "confirm_password": "abc",
			},
			wantMsg: "Password minimal 6 karakter",
		},
		{
			name: "nomor HP salah format",
			body: gin.H{
				"full_name": "Budi", "email": "a@b.com", "phone": "08abc",
				"password": "secret123", "confirm_password": "secret123",
			},
			wantMsg: "Format nomor HP tidak valid",
		},
		{
			name: "nomor HP diawali nol ditolak",
			body: gin.H{
				"full_name": "Budi", "email": "a@b.com", "phone": "0811222333",
				"password": "secret123", "confirm_password": "secret123",
			},
			wantMsg: "Format nomor HP tidak valid",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.wantMsg, parseBody(t, w)["message"])
		})
	}

	// Tidak boleh ada user yang kebentuk dari input invalid
	var count int64
	config.DB.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestRegisterCreatesUserWalletAndCode(t *testing.T) {
	r := setupRouter(t)

	user := registerUser(t, r, "budi@mail.com", "")

	assert.Len(t, user.ReferralCode, 8)
	for _, ch := range user.ReferralCode {
		assert.True(t, (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9'),
			"kode referral harus alfanumerik uppercase: %s", user.ReferralCode)
	}

	var wallet models.Wallet
	require.NoError(t, config.DB.Where("user_id = ?", user.ID).First(&wallet).Error)
	assert.Zero(t, wallet.Available)
	assert.Zero(t, wallet.Pending)
	assert.Zero(t, wallet.TotalEarned)
}

func TestRegisterDuplicateEmailDistinctMessage(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "budi@mail.com", "")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"full_name": "Budi Lagi", "email": "budi@mail.com",
		"password": "secret123", "confirm_password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email sudah terdaftar!", parseBody(t, w)["message"])
}

func TestReferralBonusCreditedPerSignup(t *testing.T) {
	r := setupRouter(t)

	referrer := registerUser(t, r, "referrer@mail.com", "")

	// Dua signup pakai kode yang sama -> bonus dua kali
	registerUser(t, r, "teman1@mail.com", referrer.ReferralCode)
	registerUser(t, r, "teman2@mail.com", referrer.ReferralCode)

	var wallet models.Wallet
	require.NoError(t, config.DB.Where("user_id = ?", referrer.ID).First(&wallet).Error)
	assert.Equal(t, 2*handlers.DefaultReferralBonus, wallet.Available)

	var credits int64
	config.DB.Model(&models.ReferralCredit{}).Where("referrer_id = ?", referrer.ID).Count(&credits)
	assert.EqualValues(t, 2, credits)
}

func TestRegisterUnknownReferralCodeStillSucceeds(t *testing.T) {
	r := setupRouter(t)

	user := registerUser(t, r, "solo@mail.com", "ZZZZ9999")
	assert.NotZero(t, user.ID)

	var credits int64
	config.DB.Model(&models.ReferralCredit{}).Count(&credits)
	assert.Zero(t, credits)
}

func TestLogin(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "budi@mail.com", "")

	t.Run("password salah", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "budi@mail.com", "password": "salahtotal",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("sukses dapat token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "budi@mail.com", "password": "secret123",
		})
		require.Equal(t, http.StatusOK, w.Code)
		data := parseBody(t, w)["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])
	})

	t.Run("gate verifikasi email aktif", func(t *testing.T) {
		t.Setenv("REQUIRE_VERIFIED_EMAIL", "true")
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "budi@mail.com", "password": "secret123",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestOAuthRejectsUnknownProfile(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/oauth", "", gin.H{
		"provider": "google", "email": "belumdaftar@mail.com", "id_token": "dummy",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, parseBody(t, w)["message"], "register")
}

func TestRefreshRotation(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "budi@mail.com", "")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "budi@mail.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	oldRefresh := parseBody(t, w)["data"].(map[string]interface{})["refresh_token"].(string)

	// Tukar token
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": oldRefresh})
	require.Equal(t, http.StatusOK, w.Code)
	newRefresh := parseBody(t, w)["data"].(map[string]interface{})["refresh_token"].(string)
	assert.NotEqual(t, oldRefresh, newRefresh)

	// Token lama harus sudah mati
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": oldRefresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyEmailFlow(t *testing.T) {
	r := setupRouter(t)
	user := registerUser(t, r, "budi@mail.com", "")
	token := tokenFor(t, user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/verify/send", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	verifyToken := parseBody(t, w)["data"].(map[string]interface{})["verify_token"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/verify", "", gin.H{"token": verifyToken})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, config.DB.First(&updated, user.ID).Error)
	assert.True(t, updated.IsVerified)
}
