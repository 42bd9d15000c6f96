package billing

import (
	"crypto/rand"
	"fmt"
)

const referenceTokenLen = 8

var referenceCharset = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// NewPaymentReference produces a prefixed token recorded on each subscription
// so manual payments can be traced back to the operation that created them.
func NewPaymentReference(prefix string) (string, error) {
	buf := make([]byte, referenceTokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating payment reference: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}
	return prefix + string(buf), nil
}
