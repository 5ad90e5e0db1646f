package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Claims is the token payload. Permissions is the flattened effective set,
// one "SISTEMA|FUNCAO|ACOES" entry per tuple; the tenant accessor reads
// TenantID from here.
type Claims struct {
	TenantID    int64    `json:"tenant_id"`
	CdUsuario   string   `json:"cd_usuario"`
	DcUsuario   string   `json:"dc_usuario"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// secretKey reads the signing secret from the environment.
func secretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me-in-production"
	}
	return []byte(secret)
}

// GenerateToken issues a 24h HS256 token for an authenticated user.
func GenerateToken(tenantID int64, cdUsuario, dcUsuario string, permissions []string) (string, error) {
	claims := &Claims{
		TenantID:    tenantID,
		CdUsuario:   cdUsuario,
		DcUsuario:   dcUsuario,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "go-backoffice",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a bearer token.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
