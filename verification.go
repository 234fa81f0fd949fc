package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	verificationCodeMin  = 100000
	verificationCodeSpan = 900000
)

// GenerateVerificationCode returns a 6-digit numeric code in
// [100000, 999999], uniformly distributed, as a string so the leading digit
// is stable. Codes are single-use: the store clears them on successful
// verification.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(verificationCodeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(verificationCodeMin+n.Int64(), 10), nil
}
