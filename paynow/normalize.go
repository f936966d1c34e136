package paynow

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sukarav/paynow-gateway/config"
	"github.com/sukarav/paynow-gateway/gateway"
	"github.com/sukarav/paynow-gateway/model"
)

const (
	referencePrefix       = "INV"
	defaultAdditionalInfo = "Online order"
	countryCode           = "263"
)

// Mobile wallets Paynow accepts for express checkout.
var walletMethods = map[string]bool{
	"ecocash":  true,
	"onemoney": true,
	"innbucks": true,
	"omari":    true,
}

var phonePattern = regexp.MustCompile(`^` + countryCode + `\d{9}$`)

// Normalize validates an inbound order request, fills in defaults from the
// configuration, and produces the complete signable payload. It is a pure
// function of its inputs apart from the generated default reference.
func Normalize(req model.OrderRequest, cfg *config.Config) (*Payload, error) {
	amountRaw := strings.TrimSpace(req.Amount)
	if amountRaw == "" {
		return nil, &gateway.ValidationError{Msg: "amount is required"}
	}
	amount, err := decimal.NewFromString(amountRaw)
	if err != nil {
		return nil, &gateway.ValidationError{Msg: "amount must be numeric"}
	}
	if amount.IsNegative() {
		return nil, &gateway.ValidationError{Msg: "amount must be non-negative"}
	}

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		reference = newReference()
	}
	additionalInfo := req.AdditionalInfo
	if additionalInfo == "" {
		additionalInfo = defaultAdditionalInfo
	}
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = cfg.ReturnURL
	}
	resultURL := req.ResultURL
	if resultURL == "" {
		resultURL = cfg.ResultURL
	}
	authEmail := req.Email
	if authEmail == "" {
		authEmail = cfg.MerchantEmail
	}

	var checkout Checkout = StandardCheckout{}
	switch {
	case req.Method != "":
		method := strings.ToLower(strings.TrimSpace(req.Method))
		if !walletMethods[method] {
			return nil, &gateway.ValidationError{Msg: fmt.Sprintf("unsupported payment method %q", req.Method)}
		}
		if strings.TrimSpace(req.Phone) == "" {
			return nil, &gateway.ValidationError{Msg: "phone is required for wallet checkout"}
		}
		phone, err := normalizePhone(req.Phone)
		if err != nil {
			return nil, err
		}
		checkout = WalletCheckout{Method: method, Phone: phone}
		// Paynow requires a wallet-derived auth email for express
		// checkouts rather than the caller's address.
		authEmail = phone + "@" + cfg.BrandDomain
	case req.Token != "":
		checkout = TokenCheckout{Token: req.Token}
	}

	payload := NewPayload(cfg.IntegrationID, reference, amount.StringFixed(2),
		additionalInfo, returnURL, resultURL, checkout)
	payload.AuthEmail = authEmail
	return payload, nil
}

// normalizePhone strips a leading +, promotes a national 0 to the country
// code, and requires the result to be a full 263-prefixed subscriber number.
func normalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	phone = strings.TrimPrefix(phone, "+")
	if strings.HasPrefix(phone, "0") {
		phone = countryCode + phone[1:]
	}
	if !phonePattern.MatchString(phone) {
		return "", &gateway.ValidationError{Msg: "invalid phone format"}
	}
	return phone, nil
}

// newReference generates a unique default reference. The uuid tail keeps two
// requests within the same second distinct.
func newReference() string {
	return fmt.Sprintf("%s-%s-%s", referencePrefix,
		time.Now().UTC().Format("20060102150405"), uuid.NewString()[:8])
}
