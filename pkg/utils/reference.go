package utils

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUUIDv7 generates a time-ordered UUID, falling back to v4 if the
// system clock is unusable.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// GenerateInvoiceNumber returns a unique invoice number of the form
// INV-<unix timestamp>-<6 alphanumerics>.
func GenerateInvoiceNumber() string {
	return generateReference("INV")
}

// GenerateEmployeeNumber returns a unique employee number of the form
// EMP-<unix timestamp>-<6 alphanumerics>.
func GenerateEmployeeNumber() string {
	return generateReference("EMP")
}

func generateReference(prefix string) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; degrade to
		// a timestamp-only suffix rather than panic here.
		copy(buf, []byte{0, 0, 0, 0, 0, 0})
	}
	for i := range buf {
		buf[i] = referenceAlphabet[int(buf[i])%len(referenceAlphabet)]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Unix(), buf)
}
