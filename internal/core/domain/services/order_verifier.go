package services

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"

	"orderflow/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// verificationContext separates the token signing key from any other use of
// the service signing key.
const verificationContext = "order.verification"

// OrderVerifier issues and checks verification tokens that let anonymous
// customers view their order status pages. Tokens are HS256 JWTs over the
// order number; checking also accepts the legacy MD5 scheme so links issued
// before the migration keep working.
//
// Check never reports why verification failed, only that it did.
type OrderVerifier struct {
	signingKey []byte
	legacyKey  string
}

// NewOrderVerifier creates an OrderVerifier. The legacy key is optional;
// without it the legacy scheme is not accepted.
func NewOrderVerifier(signingKey []byte, legacyKey string) (*OrderVerifier, error) {
	if len(signingKey) == 0 {
		return nil, errs.NewValueIsRequiredError("signing key")
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write([]byte(verificationContext))

	return &OrderVerifier{
		signingKey: mac.Sum(nil),
		legacyKey:  legacyKey,
	}, nil
}

// Hash issues a verification token for an order number.
func (v *OrderVerifier) Hash(orderNumber string) (string, error) {
	if orderNumber == "" {
		return "", errs.NewValueIsRequiredError("order number")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: orderNumber,
	})
	return token.SignedString(v.signingKey)
}

// Check reports whether a token verifies the given order number. Malformed
// and foreign tokens simply fail the check.
func (v *OrderVerifier) Check(orderNumber, tokenToCheck string) bool {
	if orderNumber == "" || tokenToCheck == "" {
		return false
	}

	if v.checkLegacy(orderNumber, tokenToCheck) {
		return true
	}

	parsed, err := jwt.ParseWithClaims(tokenToCheck, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return v.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return false
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return false
	}
	return hmac.Equal([]byte(claims.Subject), []byte(orderNumber))
}

// checkLegacy accepts the MD5 digests issued by the previous system.
func (v *OrderVerifier) checkLegacy(orderNumber, hashToCheck string) bool {
	if v.legacyKey == "" {
		return false
	}

	digest := md5.Sum([]byte(orderNumber + v.legacyKey))
	return hmac.Equal([]byte(hex.EncodeToString(digest[:])), []byte(hashToCheck))
}
