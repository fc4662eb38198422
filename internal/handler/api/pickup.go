package api

import (
	"net/http"
	"time"

	reqdto "partage/internal/handler/dto/request"
	resdto "partage/internal/handler/dto/response"
	"partage/internal/handler/middleware"
	"partage/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PickupHandler struct {
	pickup commands.PickupCommands
}

func NewPickupHandler(pickup commands.PickupCommands) *PickupHandler {
	return &PickupHandler{pickup: pickup}
}

// @Summary Create a pickup slot
// @Tags pickup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.CreatePickupSlotRequest true "Slot window"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 403 {object} map[string]string
// @Router /orders/{id}/pickup-slots [post]
func (h *PickupHandler) CreateSlot(c *gin.Context) {
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

	var req reqdto.CreatePickupSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var weekday *time.Weekday
	if req.Weekday != nil {
		wd := time.Weekday(*req.Weekday)
		weekday = &wd
	}

	slotID, err := h.pickup.CreatePickupSlot(c.Request.Context(), commands.CreatePickupSlotParams{
		OrderID: orderID,
		ActorID: actorID,
		Weekday: weekday,
		Date:    req.Date,
		Start:   req.Start,
		End:     req.End,
		Enabled: req.Enabled,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: slotID})
}

// @Summary Enable or disable a pickup slot
// @Tags pickup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param slotId path string true "Slot ID"
// @Param request body reqdto.SetPickupSlotEnabledRequest true "Enabled flag"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /orders/{id}/pickup-slots/{slotId} [patch]
func (h *PickupHandler) SetSlotEnabled(c *gin.Context) {
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
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	var req reqdto.SetPickupSlotEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.pickup.SetPickupSlotEnabled(c.Request.Context(), orderID, actorID, slotID, *req.Enabled); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Select a pickup slot
// @Description Participants choose a slot once the goods are receivable
// @Tags pickup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.SelectPickupSlotRequest true "Slot choice"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/pickup-slots/select [post]
func (h *PickupHandler) SelectSlot(c *gin.Context) {
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

	var req reqdto.SelectPickupSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.pickup.SelectPickupSlot(c.Request.Context(), orderID, profileID, req.SlotID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Approve a participant's pickup slot request
// @Tags pickup
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param participantId path string true "Participant ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /orders/{id}/participants/{participantId}/pickup-slot/approve [post]
func (h *PickupHandler) ApproveSlot(c *gin.Context) {
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

	if err := h.pickup.ApprovePickupSlot(c.Request.Context(), orderID, actorID, participantID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
