package model

// OrderRequest is the inbound JSON body for POST /create-paynow-order. Only
// amount is required; everything else gets a default during normalization.
// Field names mirror the Paynow form keys.
type OrderRequest struct {
	Amount         string `json:"amount"`
	Reference      string `json:"reference"`
	AdditionalInfo string `json:"additionalinfo"`
	ReturnURL      string `json:"returnurl"`
	ResultURL      string `json:"resulturl"`
	Email          string `json:"email"`
	Method         string `json:"method"`
	Phone          string `json:"phone"`
	Token          string `json:"token"`
}

// OrderResponse is returned on a successful initiation. URL is null for
// express checkouts, which push a prompt to the payer instead of redirecting
// the browser.
type OrderResponse struct {
	Success bool    `json:"success"`
	URL     *string `json:"url"`
	PollURL string  `json:"pollUrl,omitempty"`
}

// ErrorResponse is the body of every 4xx/5xx reply. Raw carries the
// processor's response verbatim when it rejected the transaction.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Raw     string `json:"raw,omitempty"`
}

// PollResponse is the parsed result of proxying a Paynow poll URL.
type PollResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
}
