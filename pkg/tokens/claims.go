package tokens

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var ErrUnexpectedSignMethod = errors.New("unexpected sign method")

type AccessClaims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// Sign produces a compact HS256 token: header.payload.signature.
func Sign(claims jwt.Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func keyFunc(secret []byte) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrUnexpectedSignMethod
		}
		return secret, nil
	}
}

// Verify checks signature and structure only and decodes the payload into claims.
// Expiry and the other time based claims are left to the caller.
func Verify(tokenStr string, secret []byte, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc(secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return err
	}
	if !tkn.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}

// RefreshClaimsFromToken fully validates a refresh token, expiry included.
// Nothing redeems refresh tokens yet; a token exchange route would start here.
func RefreshClaimsFromToken(tokenStr string, refreshSecret []byte) (*RefreshClaims, error) {
	var claims RefreshClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, keyFunc(refreshSecret), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, err
	}
	if claims.Type != TypeRefresh {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &claims, nil
}
