package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/sukarav/paynow-gateway/config"
	"github.com/sukarav/paynow-gateway/gateway"
	"github.com/sukarav/paynow-gateway/model"
	"github.com/sukarav/paynow-gateway/paynow"
)

// PaynowService signs payloads and talks to the Paynow transaction
// endpoints. The resty client is injected so callers control timeouts and
// transport instrumentation.
type PaynowService struct {
	cfg    *config.Config
	client *resty.Client
}

func NewPaynowService(cfg *config.Config, client *resty.Client) *PaynowService {
	return &PaynowService{cfg: cfg, client: client}
}

// Initiate signs the payload, POSTs it as a URL-encoded form to the
// transaction-initiation endpoint (the remote endpoint for express
// checkouts), and maps the form-shaped response. A network failure or non-2xx
// reply becomes GatewayUnavailable; a well-formed non-OK status becomes
// GatewayRejected via the response mapper.
func (s *PaynowService) Initiate(ctx context.Context, payload *paynow.Payload) (*paynow.InitiationResult, error) {
	hash, err := paynow.Sign(payload.Fields(), s.cfg.IntegrationKey)
	if err != nil {
		return nil, err
	}

	endpoint := s.cfg.InitiateURL
	if payload.Express() {
		endpoint = s.cfg.RemoteURL
	}

	slog.InfoContext(ctx, "Paynow initiate call started",
		slog.String("endpoint", endpoint),
		slog.String("reference", payload.Get("reference")))
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormDataFromValues(payload.Values(hash)).
		Post(endpoint)
	if err != nil {
		return nil, &gateway.GatewayUnavailable{Err: fmt.Errorf("failed to call paynow: %w", err)}
	}
	slog.InfoContext(ctx, "Paynow initiate call completed",
		slog.Int("status", resp.StatusCode()))

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &gateway.GatewayUnavailable{Err: fmt.Errorf("paynow returned %s", resp.Status())}
	}

	raw := string(resp.Body())
	rec, err := paynow.ParseRecord(raw)
	if err != nil {
		return nil, &gateway.GatewayUnavailable{Err: fmt.Errorf("failed to parse paynow response: %w", err)}
	}

	s.checkResponseHash(ctx, rec)

	return paynow.MapResponse(rec, raw)
}

// Poll proxies a Paynow poll URL and returns the transaction status and
// reference parsed from its form-shaped body.
func (s *PaynowService) Poll(ctx context.Context, pollURL string) (*model.PollResponse, error) {
	slog.InfoContext(ctx, "Paynow poll call started", slog.String("url", pollURL))
	resp, err := s.client.R().
		SetContext(ctx).
		Post(pollURL)
	if err != nil {
		return nil, &gateway.GatewayUnavailable{Err: fmt.Errorf("failed to poll paynow: %w", err)}
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &gateway.GatewayUnavailable{Err: fmt.Errorf("paynow returned %s", resp.Status())}
	}

	rec, err := paynow.ParseRecord(string(resp.Body()))
	if err != nil {
		return nil, &gateway.GatewayUnavailable{Err: fmt.Errorf("failed to parse poll response: %w", err)}
	}

	s.checkResponseHash(ctx, rec)

	return &model.PollResponse{
		Status:    rec.Get("status"),
		Reference: rec.Get("reference"),
	}, nil
}

// checkResponseHash verifies the digest Paynow attached to a same-request
// response. A mismatch is logged and never blocks the flow; encoding
// differences are known to produce benign mismatches here. Webhooks are the
// strict path and are verified in the handler instead.
func (s *PaynowService) checkResponseHash(ctx context.Context, rec *paynow.Record) {
	claimed := rec.Get("hash")
	if claimed == "" {
		return
	}
	ok, err := paynow.Verify(rec, s.cfg.IntegrationKey, claimed)
	if err != nil {
		slog.WarnContext(ctx, "Paynow response hash check failed", slog.Any("error", err))
		return
	}
	if !ok {
		slog.WarnContext(ctx, "Paynow response hash mismatch",
			slog.String("reference", rec.Get("reference")),
			slog.String("status", rec.Get("status")))
	}
}
