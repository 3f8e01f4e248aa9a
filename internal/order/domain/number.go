package domain

import "crypto/rand"

const (
	orderNumberPrefix   = "ORD-"
	orderNumberLength   = 10
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewOrderNumber draws a random human-quotable identifier. The space is not
// provably collision-free, so creation retries on a unique-index conflict.
func NewOrderNumber() string {
	buf := make([]byte, orderNumberLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand does not fail on supported platforms
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return orderNumberPrefix + string(buf)
}
