package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"investra-backend/internal/config"
	"investra-backend/internal/models"
	"investra-backend/internal/routes"
	"investra-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter DB sqlite in-memory + router beneran, satu DB per test
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("RATE_LIMIT_RPS", "10000")
	t.Setenv("RATE_LIMIT_BURST", "10000")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	config.DB = db
	config.RDB = nil // feed jadi no-op di test

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// registerUser daftar lewat API, balikin user + kode referralnya
func registerUser(t *testing.T, r *gin.Engine, email string, referralCode string) models.User {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"full_name":        "Test User",
		"email":            email,
		"password":         "secret123",
		"confirm_password": "secret123",
		"referral_code":    referralCode,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", email).First(&user).Error)
	return user
}

func tokenFor(t *testing.T, userID uint64) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
