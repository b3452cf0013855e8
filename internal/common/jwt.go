package common

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

// Anonymous is the identity of a caller whose bearer could not be resolved.
const Anonymous = ""

// Claims represents the data stored in the bearer token. The subject
// identifier is issued by the identity component; the core only needs it
// back out.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func GenerateToken(userID string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "intrachat",
			Subject:   "user-auth",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtSecret)
}

// Resolve maps a bearer string to a user identifier. It is total: a
// malformed, expired or forged bearer resolves to Anonymous, never an error.
func Resolve(bearer string) string {
	if bearer == "" {
		return Anonymous
	}

	token, err := jwt.ParseWithClaims(bearer, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return Anonymous
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims.UserID
	}
	return Anonymous
}

// SetSecret overrides the signing secret; used by tests and by the config
// loader when JWT_SECRET arrives after package init.
func SetSecret(secret []byte) {
	jwtSecret = secret
}
