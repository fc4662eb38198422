package api

import (
	"net/http"

	"partage/internal/domain/order"
	reqdto "partage/internal/handler/dto/request"
	resdto "partage/internal/handler/dto/response"
	"partage/internal/handler/middleware"
	"partage/internal/usecase/commands"
	"partage/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orders      commands.OrderCommands
	lineItems   commands.LineItemCommands
	orderViews  queries.OrderQueries
	eligibility queries.EligibilityQueries
}

func NewOrderHandler(
	orders commands.OrderCommands,
	lineItems commands.LineItemCommands,
	orderViews queries.OrderQueries,
	eligibility queries.EligibilityQueries,
) *OrderHandler {
	return &OrderHandler{
		orders:      orders,
		lineItems:   lineItems,
		orderViews:  orderViews,
		eligibility: eligibility,
	}
}

// @Summary Create an order
// @Description Create a group order with frozen per-unit prices for the selected products
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Order definition"
// @Success 201 {object} resdto.OrderCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ownerID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orders.CreateOrder(c.Request.Context(), req.ToParams(ownerID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.OrderCreatedResponse{ID: result.OrderID, Code: result.Code})
}

// @Summary Get an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	viewerID, _ := middleware.GetProfileID(c)
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	view, err := h.orderViews.GetOrder(c.Request.Context(), orderID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.renderOrder(c, view)
}

// @Summary Get an order by share code
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param code path string true "Order code"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} map[string]string
// @Router /orders/code/{code} [get]
func (h *OrderHandler) GetOrderByCode(c *gin.Context) {
	viewerID, _ := middleware.GetProfileID(c)

	view, err := h.orderViews.GetOrderByCode(c.Request.Context(), c.Param("code"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.renderOrder(c, view)
}

func (h *OrderHandler) renderOrder(c *gin.Context, view *queries.OrderView) {
	resp, err := resdto.FromOrderView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Transition an order
// @Description Drive the order lifecycle; actor and precondition checks run server-side
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.TransitionRequest true "Target status"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/transition [post]
func (h *OrderHandler) Transition(c *gin.Context) {
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

	var req reqdto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orders.Transition(c.Request.Context(), orderID, actorID, order.Status(req.Target)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Change order visibility
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.SetVisibilityRequest true "Visibility and flags"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /orders/{id}/visibility [put]
func (h *OrderHandler) SetVisibility(c *gin.Context) {
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

	var req reqdto.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	flags := order.ParticipantFlags{
		Profile: req.Flags.Profile,
		Content: req.Flags.Content,
		Weight:  req.Flags.Weight,
		Amount:  req.Flags.Amount,
	}
	if err := h.orders.SetVisibility(c.Request.Context(), orderID, actorID, order.Visibility(req.Visibility), flags); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add a line item
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.AddLineItemRequest true "Offer and quantity"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/items [post]
func (h *OrderHandler) AddLineItem(c *gin.Context) {
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

	var req reqdto.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	itemID, err := h.lineItems.AddLineItem(c.Request.Context(), orderID, profileID, req.OfferID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: itemID})
}

// @Summary Remove a line item
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param itemId path string true "Line item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/items/{itemId} [delete]
func (h *OrderHandler) RemoveLineItem(c *gin.Context) {
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
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line item ID"})
		return
	}

	if err := h.lineItems.RemoveLineItem(c.Request.Context(), orderID, profileID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check delivery-zone eligibility
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.EligibilityRequest true "Producer and address"
// @Success 200 {object} resdto.EligibilityResponse
// @Failure 502 {object} map[string]string
// @Router /eligibility [post]
func (h *OrderHandler) CheckEligibility(c *gin.Context) {
	var req reqdto.EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.eligibility.CheckDeliveryEligibility(c.Request.Context(), req.ProducerID, req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.EligibilityResponse{
		Eligible:   result.Eligible,
		DistanceKm: result.DistanceKm,
		RadiusKm:   result.RadiusKm,
	})
}
