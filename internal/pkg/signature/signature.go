package signature

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Compute derives the webhook signature the gateway sends alongside every
// notification: hex(SHA-512(orderID + statusCode + grossAmount + serverKey)).
func Compute(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// Verify checks a supplied signature against the recomputed one in constant
// time.
func Verify(supplied, orderID, statusCode, grossAmount, serverKey string) bool {
	expected := Compute(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}
