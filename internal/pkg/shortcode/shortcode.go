// Package shortcode generates the short human-typable identifiers the engine
// exposes outside: public order codes and participant pickup codes. These are
// not uuids on purpose; they get read over the phone and written on crates.
package shortcode

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Ambiguous characters (0/O, 1/I/L) are excluded.
const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

func generate(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; degrade to a
		// timestamp-derived code rather than returning an empty string.
		return fmt.Sprintf("%d", time.Now().UnixNano())[:n]
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out)
}

// NewOrderCode returns an 8-character public order code.
func NewOrderCode() string {
	return generate(8)
}

// NewPickupCode returns a 6-character pickup credential.
func NewPickupCode() string {
	return generate(6)
}
