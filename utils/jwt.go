package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims เป็น custom JWT claims ที่เราจะใช้ในระบบ; RegisteredClaims.ID carries the session id.
type Claims struct {
	UserID uint `json:"userId"`
	Staff  bool `json:"staff,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken สร้าง JWT สำหรับผู้ใช้
func GenerateToken(userID uint, staff bool, sessionID, secret string, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Staff:  staff,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // อายุ token
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 || claims.ID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
