package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/userauth/userauth-go/internal/model"
)

const (
	tokenIssuer   = "userauth"
	tokenAudience = "userauth-api"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrTokenExpired     = fmt.Errorf("%w: token expired", ErrInvalidToken)
)

// Claims represents the JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// GenerateToken signs the claims with HS256. The exp claim is issue time plus
// ttl, encoded in whole seconds as JWT NumericDate requires.
func GenerateToken(claims model.AuthClaims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   claims.Email,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name:  claims.Name,
		Email: claims.Email,
		Admin: claims.Admin,
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry of a token and returns the
// embedded claims. Signature failures (including tampered or malformed tokens)
// yield ErrInvalidSignature, an elapsed exp yields ErrTokenExpired.
func ValidateToken(tokenString, secret string) (model.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return model.AuthClaims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer),
			errors.Is(err, jwt.ErrTokenInvalidAudience),
			errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return model.AuthClaims{}, ErrInvalidToken
		default:
			return model.AuthClaims{}, ErrInvalidSignature
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.AuthClaims{}, ErrInvalidToken
	}

	return model.AuthClaims{
		Name:  claims.Name,
		Email: claims.Email,
		Admin: claims.Admin,
	}, nil
}
