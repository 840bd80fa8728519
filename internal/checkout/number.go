package checkout

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Alphabet for the order number suffix. Ambiguous glyphs (0/O, 1/I/L) are
// left out so numbers survive being read over the phone.
const numberAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ23456789"

const numberSuffixLen = 5

// NewOrderNumber returns a short human-readable order number such as
// AQ-260829-K7Q2M: a date stamp plus a random suffix.
func NewOrderNumber(now time.Time) (string, error) {
	buf := make([]byte, numberSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	for i, b := range buf {
		buf[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return fmt.Sprintf("AQ-%s-%s", now.UTC().Format("060102"), buf), nil
}
