package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a manager session token.
type Claims struct {
	ManagerID uint   `json:"manager_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 manager tokens.
type JWTService struct {
	secret   []byte
	expHours int
}

func NewJWTService(secret string, expHours int) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		expHours: expHours,
	}
}

// Generate signs a token for the given manager identity.
func (s *JWTService) Generate(managerID uint, username string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		ManagerID: managerID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
