package paynow

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/sukarav/paynow-gateway/gateway"
)

var testFields = []Field{
	{"id", "1201"},
	{"reference", "INV-20250101120000-deadbeef"},
	{"amount", "0.69"},
	{"additionalinfo", "Express Checkout Test"},
	{"returnurl", "https://sukaravtech.art/success"},
	{"resulturl", "https://sukaravtech.art/paynow-status"},
	{"status", "Message"},
}

func TestSign(t *testing.T) {
	t.Run("Given identical input When signed twice Then digests match", func(t *testing.T) {
		first, err := Sign(testFields, "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Sign(testFields, "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Errorf("digests differ: %s vs %s", first, second)
		}
	})

	t.Run("Given the same literal inputs When recomputed independently Then digests match byte for byte", func(t *testing.T) {
		var concat string
		for _, f := range testFields {
			concat += f.Value
		}
		sum := sha512.Sum512([]byte(concat + "secret"))
		want := strings.ToUpper(hex.EncodeToString(sum[:]))

		got, err := Sign(testFields, "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("Given any field change Then the digest changes", func(t *testing.T) {
		base, _ := Sign(testFields, "secret")
		for i := range testFields {
			mutated := make([]Field, len(testFields))
			copy(mutated, testFields)
			mutated[i].Value += "x"
			digest, err := Sign(mutated, "secret")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if digest == base {
				t.Errorf("changing %q did not change the digest", testFields[i].Name)
			}
		}
	})

	t.Run("Given a key change Then the digest changes", func(t *testing.T) {
		first, _ := Sign(testFields, "secret")
		second, _ := Sign(testFields, "other")
		if first == second {
			t.Error("different keys produced the same digest")
		}
	})

	t.Run("Given any input Then the digest is 128 uppercase hex characters", func(t *testing.T) {
		digest, err := Sign(testFields, "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !regexp.MustCompile(`^[0-9A-F]{128}$`).MatchString(digest) {
			t.Errorf("digest is not 128 uppercase hex chars: %q", digest)
		}
	})

	t.Run("Given a field named hash in any case Then it is excluded", func(t *testing.T) {
		withHash := append([]Field{}, testFields...)
		withHash = append(withHash, Field{"Hash", "FFFF"})

		base, _ := Sign(testFields, "secret")
		got, err := Sign(withHash, "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != base {
			t.Error("hash field participated in the digest")
		}
	})

	t.Run("Given an empty integration key Then a configuration error is returned", func(t *testing.T) {
		_, err := Sign(testFields, "")
		var cfgErr *gateway.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigurationError, got %v", err)
		}
	})
}

func TestVerify(t *testing.T) {
	t.Run("Given a record signed with the same key Then verification round-trips", func(t *testing.T) {
		rec, err := ParseRecord("status=Paid&reference=INV-1&amount=10.00&pollurl=https%3A%2F%2Fwww.paynow.co.zw%2FInterface%2FCheckPayment%2F%3Fguid%3Dabc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		digest, err := Sign(rec.Fields(), "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ok, err := Verify(rec, "secret", digest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("round-trip verification failed")
		}
	})

	t.Run("Given a lowercased claimed digest Then comparison is case-insensitive", func(t *testing.T) {
		rec, _ := ParseRecord("status=Paid&reference=INV-1")
		digest, _ := Sign(rec.Fields(), "secret")

		ok, err := Verify(rec, "secret", strings.ToLower(digest))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("case-insensitive comparison failed")
		}
	})

	t.Run("Given a hash field inside the record Then it is excluded from the recomputation", func(t *testing.T) {
		digest, _ := Sign([]Field{{"status", "Paid"}, {"reference", "INV-1"}}, "secret")
		rec, _ := ParseRecord("status=Paid&reference=INV-1&hash=" + digest)

		ok, err := Verify(rec, "secret", digest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("record's own hash field leaked into the recomputation")
		}
	})

	t.Run("Given a tampered field Then verification fails", func(t *testing.T) {
		digest, _ := Sign([]Field{{"status", "Paid"}, {"reference", "INV-1"}}, "secret")
		rec, _ := ParseRecord("status=Cancelled&reference=INV-1&hash=" + digest)

		ok, err := Verify(rec, "secret", digest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("tampered record verified")
		}
	})

	t.Run("Given an empty integration key Then a configuration error is returned", func(t *testing.T) {
		rec, _ := ParseRecord("status=Paid")
		_, err := Verify(rec, "", "ABC")
		var cfgErr *gateway.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigurationError, got %v", err)
		}
	})
}
