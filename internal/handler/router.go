package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"partage/internal/handler/api"
	"partage/internal/handler/middleware"
	"partage/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	orderHandler *api.OrderHandler,
	participationHandler *api.ParticipationHandler,
	pickupHandler *api.PickupHandler,
	paymentHandler *api.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, orderHandler, participationHandler, pickupHandler, paymentHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	orderHandler *api.OrderHandler,
	participationHandler *api.ParticipationHandler,
	pickupHandler *api.PickupHandler,
	paymentHandler *api.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.CreateOrder},
				{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.GetOrder},
				{Method: http.MethodGet, Path: "/code/:code", Handler: orderHandler.GetOrderByCode},
				{Method: http.MethodPost, Path: "/:id/transition", Handler: orderHandler.Transition},
				{Method: http.MethodPut, Path: "/:id/visibility", Handler: orderHandler.SetVisibility},
				{Method: http.MethodPost, Path: "/:id/items", Handler: orderHandler.AddLineItem},
				{Method: http.MethodDelete, Path: "/:id/items/:itemId", Handler: orderHandler.RemoveLineItem},
				{Method: http.MethodPost, Path: "/:id/participants", Handler: participationHandler.Request},
				{Method: http.MethodPost, Path: "/:id/participants/:participantId/approve", Handler: participationHandler.Approve},
				{Method: http.MethodPost, Path: "/:id/participants/:participantId/reject", Handler: participationHandler.Reject},
				{Method: http.MethodDelete, Path: "/:id/participants/:participantId", Handler: participationHandler.Remove},
				{Method: http.MethodPost, Path: "/:id/pickup-slots", Handler: pickupHandler.CreateSlot},
				{Method: http.MethodPatch, Path: "/:id/pickup-slots/:slotId", Handler: pickupHandler.SetSlotEnabled},
				{Method: http.MethodPost, Path: "/:id/pickup-slots/select", Handler: pickupHandler.SelectSlot},
				{Method: http.MethodPost, Path: "/:id/participants/:participantId/pickup-slot/approve", Handler: pickupHandler.ApproveSlot},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: paymentHandler.Start},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/:paymentId/confirm", Handler: paymentHandler.Confirm},
				{Method: http.MethodPost, Path: "/:paymentId/fail", Handler: paymentHandler.Fail},
			})
		}

		eligibility := apiGroup.Group("/eligibility")
		eligibility.Use(authMiddleware.RequireAuth())
		{
			addRoutes(eligibility, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.CheckEligibility},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		group.Handle(r.Method, r.Path, handlers...)
	}
}
