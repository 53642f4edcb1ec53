package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const referenceLength = 6

// NewReference builds a booking reference such as "BOOK7K2P9X": the
// given prefix followed by six random uppercase-alphanumeric characters.
func NewReference(prefix string) (string, error) {
	code := make([]byte, referenceLength)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("error generating booking reference: %w", err)
		}
		code[i] = referenceAlphabet[n.Int64()]
	}
	return prefix + string(code), nil
}
