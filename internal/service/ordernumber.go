package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNumber builds a human-readable order number: prefix, the
// last six digits of the current unix-millisecond timestamp, and an
// eight character random suffix. No sequence needed; a collision would
// require the same millisecond and the same 36^8 draw.
func generateOrderNumber(prefix string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random suffix: %w", err)
	}

	suffix := make([]byte, len(buf))
	for i, b := range buf {
		suffix[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}

	return fmt.Sprintf("%s-%06d%s", prefix, time.Now().UnixMilli()%1000000, suffix), nil
}
