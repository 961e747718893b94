package jwthelper

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sorteo-app/raffles-api/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// Claims binds a token to a caller identity. Entity tokens carry the entity
// id only; manager tokens additionally carry the manager number so the
// composite key can be resolved without a username lookup.
type Claims struct {
	jwt.RegisteredClaims
	Role          string `json:"role"`
	EntityID      uint   `json:"entity_id"`
	ManagerNumber uint   `json:"manager_number,omitempty"`
}

// GenerateToken issues a signed token for the given principal.
func GenerateToken(signingKey []byte, p domain.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(p.EntityID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Role:          string(p.Role),
		EntityID:      p.EntityID,
		ManagerNumber: p.ManagerNumber,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(signingKey)
}

// ParseToken validates the signature and expiry and reconstructs the
// principal the token was issued for. The declared role must be one of the
// two known roles, and manager tokens must carry a manager number.
func ParseToken(signingKey []byte, tokenString string) (domain.Principal, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return signingKey, nil
	})
	if err != nil || !token.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	p := domain.Principal{
		EntityID:      claims.EntityID,
		Role:          domain.Role(claims.Role),
		ManagerNumber: claims.ManagerNumber,
	}

	switch p.Role {
	case domain.RoleEntity:
		if p.EntityID == 0 {
			return domain.Principal{}, ErrInvalidToken
		}
	case domain.RoleManager:
		if p.EntityID == 0 || p.ManagerNumber == 0 {
			return domain.Principal{}, ErrInvalidToken
		}
	default:
		return domain.Principal{}, ErrInvalidToken
	}

	return p, nil
}
