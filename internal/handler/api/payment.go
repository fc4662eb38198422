package api

import (
	"context"
	"net/http"

	resdto "partage/internal/handler/dto/response"
	"partage/internal/handler/middleware"
	"partage/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	payments commands.PaymentCommands
}

func NewPaymentHandler(payments commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// @Summary Start a payment
// @Description Charge the caller's current participant total via the payment provider
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 502 {object} map[string]string
// @Router /orders/{id}/payments [post]
func (h *PaymentHandler) Start(c *gin.Context) {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	paymentID, err := h.payments.StartPayment(c.Request.Context(), orderID, profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: paymentID})
}

// @Summary Confirm a payment
// @Description Provider webhook; settles the payment and consumes the stock holds
// @Tags payments
// @Param paymentId path string true "Payment ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /payments/{paymentId}/confirm [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	h.settle(c, h.payments.ConfirmPayment)
}

// @Summary Fail a payment
// @Description Provider webhook; records the failure without touching holds
// @Tags payments
// @Param paymentId path string true "Payment ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /payments/{paymentId}/fail [post]
func (h *PaymentHandler) Fail(c *gin.Context) {
	h.settle(c, h.payments.FailPayment)
}

func (h *PaymentHandler) settle(c *gin.Context, fn func(ctx context.Context, paymentID uuid.UUID) error) {
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment ID"})
		return
	}
	if err := fn(c.Request.Context(), paymentID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
