package utils

import (
	"errors"
	"os"
	"time"

	"investra-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	refreshTokenTTL = 30 * 24 * time.Hour
	verifyTokenTTL  = 48 * time.Hour
)

var (
	ErrRefreshTokenInvalid = errors.New("refresh token tidak valid")
	ErrRefreshTokenExpired = errors.New("refresh token kadaluarsa")
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "rahasia_dapur_investra" // fallback kalau .env lupa diisi
	}
	return []byte(secret)
}

// GenerateAccessToken bikin JWT akses berisi user ID.
// Umur token diatur ACCESS_TOKEN_MINUTES (default 60).
func GenerateAccessToken(userID uint64) (string, error) {
	minutes := int64(60)
	if v := os.Getenv("ACCESS_TOKEN_MINUTES"); v != "" {
		if parsed := StringToUint64(v); parsed > 0 {
			minutes = int64(parsed)
		}
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"typ":     "access",
		"exp":     time.Now().Add(time.Duration(minutes) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateToken verifikasi JWT akses (algoritma harus HMAC)
func ValidateToken(encodedToken string) (*jwt.Token, error) {
	return jwt.Parse(encodedToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
}

// GenerateRefreshToken simpan refresh token baru ke DB, balikin JTI-nya.
// JTI itu yang dipegang client, bukan JWT.
func GenerateRefreshToken(db *gorm.DB, userID uint64) (string, error) {
	rt := models.RefreshToken{
		JTI:       uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return rt.JTI, nil
}

// ValidateRefreshToken cek token ada, belum dicabut, belum kadaluarsa
func ValidateRefreshToken(db *gorm.DB, jti string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := db.Where("jti = ? AND revoked = ?", jti, false).First(&rt).Error; err != nil {
		return nil, ErrRefreshTokenInvalid
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}
	return &rt, nil
}

// GenerateVerifyToken token sekali pakai untuk verifikasi email
func GenerateVerifyToken(userID uint64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"typ":     "verify",
		"exp":     time.Now().Add(verifyTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseVerifyToken balikin user ID dari token verifikasi email
func ParseVerifyToken(encodedToken string) (uint64, error) {
	token, err := ValidateToken(encodedToken)
	if err != nil || !token.Valid {
		return 0, errors.New("token verifikasi tidak valid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "verify" {
		return 0, errors.New("token verifikasi tidak valid")
	}
	val, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("token verifikasi tidak valid")
	}
	return uint64(val), nil
}
