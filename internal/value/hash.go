package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainDocument is the domain prefix for document fingerprints.
// The version suffix allows the algorithm to change without collisions.
const DomainDocument = "esquery/document/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes a content-addressed identifier for a document.
// Two structurally equal documents always have the same fingerprint,
// regardless of the order their keys were written in.
func Fingerprint(doc Map) (string, error) {
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainDocument, canonical), nil
}
