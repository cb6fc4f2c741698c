// Package csrf issues and checks the anti-forgery tokens embedded in the
// submission forms. Tokens are HS256 JWTs signed with the process secret key,
// so no server-side session state is needed.
package csrf

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FieldName is the hidden form field carrying the token.
const FieldName = "csrf_token"

const purpose = "csrf"

var ErrMissingToken = errors.New("csrf token missing")

type TokenService struct {
	Secret   []byte
	Issuer   string
	Duration time.Duration
}

type Claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (ts TokenService) Issue() (string, error) {
	now := time.Now()
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(ts.Secret)
	if err != nil {
		return "", fmt.Errorf("sign csrf token: %w", err)
	}
	return s, nil
}

func (ts TokenService) Verify(tokenString string) error {
	if tokenString == "" {
		return ErrMissingToken
	}

	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		// enforce HS256
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.Secret, nil
	}, jwt.WithIssuer(ts.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("parse csrf token: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Purpose != purpose {
		return fmt.Errorf("invalid csrf token claims")
	}
	return nil
}

// VerifyRequest checks the token posted with the form in c.
func (ts TokenService) VerifyRequest(c *gin.Context) error {
	return ts.Verify(c.PostForm(FieldName))
}
