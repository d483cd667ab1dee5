package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/service"
)

// PaymentHandler covers the payment state endpoints.
type PaymentHandler struct {
	Payments *service.PaymentService
}

func NewPaymentHandler(s *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: s}
}

type initiatePaymentReq struct {
	RegistrationID uint64 `json:"registration_id"`
	AmountCents    uint32 `json:"amount_cents"`
	Currency       string `json:"currency"`
}

type settlePaymentReq struct {
	TransactionRef string `json:"transaction_ref"`
}

type paymentResp struct {
	ID             uint64    `json:"id"`
	RegistrationID uint64    `json:"registration_id"`
	AmountCents    uint32    `json:"amount_cents"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	TransactionRef *string   `json:"transaction_ref,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toPaymentResp(p model.Payment) paymentResp {
	return paymentResp{
		ID: p.ID, RegistrationID: p.RegistrationID,
		AmountCents: p.AmountCents, Currency: p.Currency,
		Status: string(p.Status), TransactionRef: p.TransactionRef,
		CreatedAt: p.CreatedAt,
	}
}

// Initiate creates a pending payment for a registration.
func (h *PaymentHandler) Initiate(c echo.Context) error {
	var req initiatePaymentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.RegistrationID == 0 {
		return badRequest(c, "registration_id required")
	}
	p, err := h.Payments.Initiate(c.Request().Context(), req.RegistrationID, req.AmountCents, req.Currency)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toPaymentResp(p))
}

// Complete settles a payment and confirms its registration.
func (h *PaymentHandler) Complete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid payment id")
	}
	var req settlePaymentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Payments.Complete(c.Request().Context(), id, req.TransactionRef)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentResp(p))
}

// Fail marks a payment failed; the registration stays pending.
func (h *PaymentHandler) Fail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid payment id")
	}
	var req settlePaymentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Payments.Fail(c.Request().Context(), id, req.TransactionRef)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentResp(p))
}
