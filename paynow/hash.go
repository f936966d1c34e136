package paynow

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"github.com/sukarav/paynow-gateway/gateway"
)

// Sign concatenates the raw field values in their declared order, appends
// the integration key, and returns the uppercase hex SHA-512 digest. Any
// field named "hash" is skipped regardless of case. Values go in unencoded:
// the digest is computed over raw strings, never over the form encoding.
func Sign(fields []Field, integrationKey string) (string, error) {
	if integrationKey == "" {
		return "", &gateway.ConfigurationError{Msg: "paynow integration key is not set"}
	}

	var sb strings.Builder
	for _, f := range fields {
		if strings.EqualFold(f.Name, "hash") {
			continue
		}
		sb.WriteString(f.Value)
	}
	sb.WriteString(integrationKey)

	sum := sha512.Sum512([]byte(sb.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:])), nil
}

// Verify re-derives the digest over every field of the record except "hash",
// in the order the response declared them, and compares it to the claimed
// digest case-insensitively. Paynow signs all fields present in a response,
// not a fixed subset.
func Verify(rec *Record, integrationKey, claimed string) (bool, error) {
	digest, err := Sign(rec.Fields(), integrationKey)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(digest, claimed), nil
}
