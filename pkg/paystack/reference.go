package paystack

import (
	"crypto/rand"
	"fmt"
	"time"
)

// DefaultReferencePrefix tags enrollment payment references.
const DefaultReferencePrefix = "EA_TRAIN"

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference produces a payment reference of the form
// {prefix}_{unixMillis}_{6 uppercase alphanumerics}. Collisions are
// astronomically unlikely but not impossible; the payments table
// enforces uniqueness and creation surfaces a conflict if one occurs.
func NewReference(prefix string) string {
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), randomToken(6))
}

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back
		// to a time-derived token so reference generation never blocks.
		seed := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(seed >> (uint(i) * 8))
		}
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return string(out)
}
