package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

const (
	numericCodeMin   = 100000
	numericCodeRange = 900000
)

// GenerateNumericCode returns a six digit code drawn uniformly from [100000, 999999].
func GenerateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(numericCodeRange))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+numericCodeMin), nil
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CategoryKey derives the public category identifier from its name,
// e.g. "Hot  Drinks" becomes "Cat_hot_drinks".
func CategoryKey(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return "Cat_" + strings.Join(fields, "_")
}

// NextProductKey returns the product identifier following last ("p00007" -> "p00008").
// An empty or unparsable last starts the sequence at p00001.
func NextProductKey(last string) string {
	var n int
	if strings.HasPrefix(last, "p") {
		if _, err := fmt.Sscanf(last[1:], "%d", &n); err != nil {
			n = 0
		}
	}
	return fmt.Sprintf("p%05d", n+1)
}
