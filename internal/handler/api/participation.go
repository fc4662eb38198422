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

type ParticipationHandler struct {
	participation commands.ParticipationCommands
}

func NewParticipationHandler(participation commands.ParticipationCommands) *ParticipationHandler {
	return &ParticipationHandler{participation: participation}
}

// @Summary Request to join an order
// @Tags participation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/participants [post]
func (h *ParticipationHandler) Request(c *gin.Context) {
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

	participantID, err := h.participation.RequestParticipation(c.Request.Context(), orderID, profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: participantID})
}

// @Summary Approve a join request
// @Tags participation
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param participantId path string true "Participant ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /orders/{id}/participants/{participantId}/approve [post]
func (h *ParticipationHandler) Approve(c *gin.Context) {
	h.resolve(c, h.participation.ApproveParticipation)
}

// @Summary Reject a join request
// @Tags participation
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param participantId path string true "Participant ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /orders/{id}/participants/{participantId}/reject [post]
func (h *ParticipationHandler) Reject(c *gin.Context) {
	h.resolve(c, h.participation.RejectParticipation)
}

// @Summary Remove a participant
// @Tags participation
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param participantId path string true "Participant ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /orders/{id}/participants/{participantId} [delete]
func (h *ParticipationHandler) Remove(c *gin.Context) {
	h.resolve(c, h.participation.RemoveParticipation)
}

func (h *ParticipationHandler) resolve(c *gin.Context, fn func(ctx context.Context, orderID, actorID, participantID uuid.UUID) error) {
	actorID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	participantID, err := uuid.Parse(c.Param("participantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid participant ID"})
		return
	}

	if err := fn(c.Request.Context(), orderID, actorID, participantID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
