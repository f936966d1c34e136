package paynow

import "net/url"

// Field is a single named value of the transaction form.
type Field struct {
	Name  string
	Value string
}

// Checkout selects how the payer completes the transaction. The variant
// decides which extra fields join the signable set and whether the request
// goes to the remote (server-to-server) endpoint.
type Checkout interface {
	fields() []Field
	express() bool
}

// StandardCheckout redirects the payer's browser to Paynow.
type StandardCheckout struct{}

// WalletCheckout pushes a payment prompt to a mobile money account.
type WalletCheckout struct {
	Method string
	Phone  string
}

// TokenCheckout charges a previously tokenized card.
type TokenCheckout struct {
	Token string
}

func (StandardCheckout) fields() []Field { return nil }
func (StandardCheckout) express() bool   { return false }

func (c WalletCheckout) fields() []Field {
	return []Field{{"method", c.Method}, {"phone", c.Phone}}
}
func (WalletCheckout) express() bool { return true }

func (c TokenCheckout) fields() []Field { return []Field{{"token", c.Token}} }
func (TokenCheckout) express() bool     { return true }

// Payload is the ordered field set that gets signed and sent to Paynow.
//
// The order below is the one Paynow recomputes on its side; changing it
// breaks authorization with an opaque error, so it lives in exactly one
// place. AuthEmail travels in the form but never participates in the
// signature, same as the hash itself.
type Payload struct {
	ordered   []Field
	checkout  Checkout
	AuthEmail string
}

// NewPayload assembles the signable field set for one transaction. All
// values must already be normalized: amount formatted to two decimals, URLs
// and reference final.
func NewPayload(integrationID, reference, amount, additionalInfo, returnURL, resultURL string, checkout Checkout) *Payload {
	ordered := []Field{
		{"id", integrationID},
		{"reference", reference},
		{"amount", amount},
		{"additionalinfo", additionalInfo},
		{"returnurl", returnURL},
		{"resulturl", resultURL},
		{"status", "Message"},
	}
	ordered = append(ordered, checkout.fields()...)
	return &Payload{ordered: ordered, checkout: checkout}
}

// Fields returns the signable fields in their fixed order. The slice is the
// payload's own; callers must not reorder it.
func (p *Payload) Fields() []Field { return p.ordered }

// Get returns the value of the named signable field, or "" when absent.
func (p *Payload) Get(name string) string {
	for _, f := range p.ordered {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Express reports whether this payload targets the remote transaction
// endpoint instead of the browser-redirect one.
func (p *Payload) Express() bool { return p.checkout.express() }

// Values builds the transport form: every signable field plus authemail and
// the supplied hash. URL encoding happens when the form is serialized; the
// signature is always computed over the raw values held here.
func (p *Payload) Values(hash string) url.Values {
	values := url.Values{}
	for _, f := range p.ordered {
		values.Set(f.Name, f.Value)
	}
	values.Set("authemail", p.AuthEmail)
	values.Set("hash", hash)
	return values
}
