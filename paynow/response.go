package paynow

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sukarav/paynow-gateway/gateway"
)

// Record is a case-insensitive view over a form-encoded Paynow response that
// preserves the order fields were declared in. url.ParseQuery would lose the
// declaration order, which response verification depends on, so parsing is
// done pair by pair here.
type Record struct {
	ordered []Field
	index   map[string]string
}

// ParseRecord parses a key=value&key=value body. Keys keep their original
// spelling in Fields() and are looked up case-insensitively through Get().
func ParseRecord(body string) (*Record, error) {
	rec := &Record{index: make(map[string]string)}
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, fmt.Errorf("malformed response field name %q: %w", rawName, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("malformed response field %q: %w", name, err)
		}
		rec.ordered = append(rec.ordered, Field{Name: name, Value: value})
		rec.index[strings.ToLower(name)] = value
	}
	return rec, nil
}

// Fields returns the record's fields in declared order.
func (r *Record) Fields() []Field { return r.ordered }

// Get returns the value for the named field, matched case-insensitively.
func (r *Record) Get(name string) string { return r.index[strings.ToLower(name)] }

// Has reports whether the named field is present, matched case-insensitively.
func (r *Record) Has(name string) bool {
	_, ok := r.index[strings.ToLower(name)]
	return ok
}

// InitiationResult is the caller-facing outcome of a successful initiation.
// RedirectURL is empty for express checkouts, which prompt the payer
// directly and leave only the poll URL behind.
type InitiationResult struct {
	RedirectURL string
	PollURL     string
}

// MapResponse maps a parsed initiation response to its terminal state:
// OK with a browser URL, OK without one (express), or a rejection carrying
// the processor's error text and raw body.
func MapResponse(rec *Record, raw string) (*InitiationResult, error) {
	if strings.EqualFold(rec.Get("status"), "ok") {
		result := &InitiationResult{PollURL: rec.Get("pollurl")}
		if u := rec.Get("browserurl"); u != "" {
			result.RedirectURL = u
		} else if u := rec.Get("redirecturl"); u != "" {
			result.RedirectURL = u
		}
		return result, nil
	}

	reason := rec.Get("error")
	if reason == "" {
		reason = "paynow rejected the transaction"
	}
	return nil, &gateway.GatewayRejected{Reason: reason, Raw: raw}
}
