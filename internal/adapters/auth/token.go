package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"weddingplanner/internal/domain"
)

type adminClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a TokenVerifier that accepts HS256 JWTs signed with
// secret and carrying the "admin" role. Tokens are minted by the couple's
// auth service; this side only verifies.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(token string) (string, error) {
	claims := &adminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}
	for _, role := range claims.Roles {
		if role == "admin" {
			return claims.Subject, nil
		}
	}
	return "", domain.ErrForbidden
}
