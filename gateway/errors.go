package gateway

import "fmt"

// ValidationError reports a request the caller has to fix. It always maps to
// a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// GatewayRejected means Paynow answered with a well-formed non-OK status.
// The raw response body is kept for diagnostics.
type GatewayRejected struct {
	Reason string
	Raw    string
}

func (e *GatewayRejected) Error() string { return e.Reason }

// GatewayUnavailable covers network failures, timeouts and non-2xx replies
// from the processor. Distinct from GatewayRejected: the processor never gave
// a usable answer.
type GatewayUnavailable struct {
	Err error
}

func (e *GatewayUnavailable) Error() string {
	return fmt.Sprintf("paynow unreachable: %v", e.Err)
}

func (e *GatewayUnavailable) Unwrap() error { return e.Err }

// ConfigurationError reports missing or unusable integration settings, such
// as an empty integration key.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }
