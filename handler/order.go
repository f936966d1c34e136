package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sukarav/paynow-gateway/config"
	"github.com/sukarav/paynow-gateway/gateway"
	"github.com/sukarav/paynow-gateway/model"
	"github.com/sukarav/paynow-gateway/paynow"
)

// PaymentInitiator is the slice of the Paynow service the handlers use.
type PaymentInitiator interface {
	Initiate(ctx context.Context, payload *paynow.Payload) (*paynow.InitiationResult, error)
	Poll(ctx context.Context, pollURL string) (*model.PollResponse, error)
}

type OrderHandler struct {
	cfg     *config.Config
	service PaymentInitiator
}

func NewOrderHandler(cfg *config.Config, service PaymentInitiator) *OrderHandler {
	return &OrderHandler{cfg: cfg, service: service}
}

func (h *OrderHandler) Register(r gin.IRouter) {
	r.POST("/create-paynow-order", h.CreateOrder)
	r.GET("/healthz", h.Health)
	r.GET("/poll", h.Poll)
	r.POST("/api/paynow/webhook", h.Webhook)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request body"})
		return
	}

	payload, err := paynow.Normalize(req, h.cfg)
	if err != nil {
		h.writeError(c, err)
		return
	}
	slog.InfoContext(ctx, "Order normalized",
		slog.String("reference", payload.Get("reference")),
		slog.String("amount", payload.Get("amount")),
		slog.Bool("express", payload.Express()))

	result, err := h.service.Initiate(ctx, payload)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response := model.OrderResponse{Success: true, PollURL: result.PollURL}
	if result.RedirectURL != "" {
		response.URL = &result.RedirectURL
	}
	c.JSON(http.StatusOK, response)
}

func (h *OrderHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *OrderHandler) Poll(c *gin.Context) {
	pollURL := c.Query("pollUrl")
	if pollURL == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "pollUrl is required"})
		return
	}

	status, err := h.service.Poll(c.Request.Context(), pollURL)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Webhook handles Paynow's server-to-server status notifications. Unlike
// same-request responses, a bad hash here is a hard rejection: the
// notification alters what the merchant believes about a payment. Anything
// with a valid hash gets a 200 so Paynow stops retrying.
func (h *OrderHandler) Webhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "unable to read request body"})
		return
	}
	rec, err := paynow.ParseRecord(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "malformed webhook body"})
		return
	}

	ok, err := paynow.Verify(rec, h.cfg.IntegrationKey, rec.Get("hash"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !ok {
		slog.WarnContext(ctx, "Webhook hash verification failed",
			slog.String("reference", rec.Get("reference")))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "hash verification failed"})
		return
	}

	slog.InfoContext(ctx, "Payment status update",
		slog.String("reference", rec.Get("reference")),
		slog.String("paynowreference", rec.Get("paynowreference")),
		slog.String("status", rec.Get("status")),
		slog.String("amount", rec.Get("amount")))
	c.String(http.StatusOK, "OK")
}

// writeError maps the error taxonomy onto HTTP statuses: caller faults and
// processor rejections are 400s, everything else is a 500.
func (h *OrderHandler) writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var validation *gateway.ValidationError
	var rejected *gateway.GatewayRejected
	var unavailable *gateway.GatewayUnavailable

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: validation.Msg})
	case errors.As(err, &rejected):
		slog.WarnContext(ctx, "Paynow rejected transaction",
			slog.String("error", rejected.Reason),
			slog.String("raw", rejected.Raw))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: rejected.Reason, Raw: rejected.Raw})
	case errors.As(err, &unavailable):
		slog.ErrorContext(ctx, "Paynow unavailable", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "payment gateway unavailable"})
	default:
		slog.ErrorContext(ctx, "Internal error", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "internal error"})
	}
}
