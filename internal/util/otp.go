package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericOTP returns a uniformly random numeric code of the given
// length. The draw covers the full range, so leading zeros are possible and
// preserved ("004821" is a valid six-digit code).
func GenerateNumericOTP(digits int) (string, error) {
	if digits <= 0 {
		digits = 6
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
