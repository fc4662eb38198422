//go:build unit

package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/domain/pricing"
	"partage/internal/domain/profile"
	"partage/internal/handler/api"
	"partage/internal/handler/middleware"
	"partage/internal/infra/memory"
	"partage/internal/pkg/clock"
	"partage/internal/pkg/jwt"
	"partage/internal/usecase/commands"
	"partage/internal/usecase/shared"
	"partage/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PickupHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	uow    *memory.UnitOfWork
	tokens *jwt.Service

	orderID    uuid.UUID
	slotID     uuid.UUID
	ownerID    uuid.UUID
	producerID uuid.UUID
}

func (s *PickupHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.uow = memory.NewUnitOfWork()
	s.tokens = jwt.NewService("test-secret", 24*time.Hour)
	s.ownerID = uuid.New()
	s.producerID = uuid.New()

	o, err := order.NewOrder(order.NewOrderParams{
		Code:         "SLOTTEST",
		OwnerID:      s.ownerID,
		ProducerID:   s.producerID,
		Visibility:   order.VisibilityPrivate,
		MinWeightKg:  10,
		SharerPct:    10,
		DeliveryMode: pricing.ModeProducerDelivery,
		FlatFeeCents: 1500,
	}, now)
	s.Require().NoError(err)
	s.orderID = o.ID()

	wednesday := time.Wednesday
	slot, err := participant.NewPickupSlot(o.ID(), &wednesday, nil, "17:00", "19:00", true)
	s.Require().NoError(err)
	s.slotID = slot.ID()

	s.Require().NoError(s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		return tx.PickupSlots().Create(ctx, slot)
	}))

	handler := api.NewPickupHandler(commands.NewPickupCommands(s.uow, clock.NewMockClock(now)))

	s.router = gin.New()
	authed := s.router.Group("/", middleware.NewAuthMiddleware(s.tokens).RequireAuth())
	authed.PATCH("/orders/:id/pickup-slots/:slotId", handler.SetSlotEnabled)
}

func TestPickupHandlerSuite(t *testing.T) {
	suite.Run(t, new(PickupHandlerTestSuite))
}

func (s *PickupHandlerTestSuite) tokenFor(profileID uuid.UUID) string {
	token, err := s.tokens.GenerateToken(profileID, string(profile.RoleMember))
	s.Require().NoError(err)
	return token
}

func (s *PickupHandlerTestSuite) slotPath() string {
	return fmt.Sprintf("/orders/%s/pickup-slots/%s", s.orderID, s.slotID)
}

func (s *PickupHandlerTestSuite) slotEnabled() bool {
	var enabled bool
	s.Require().NoError(s.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		slot, err := tx.PickupSlots().FindByID(ctx, s.slotID)
		if err != nil {
			return err
		}
		enabled = slot.Enabled()
		return nil
	}))
	return enabled
}

func (s *PickupHandlerTestSuite) TestSetSlotEnabled() {
	s.Run("success: owner disables and re-enables a slot", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.slotPath(),
			map[string]any{"enabled": false}, s.tokenFor(s.ownerID))
		s.Equal(http.StatusNoContent, rec.Code)
		s.False(s.slotEnabled())

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.slotPath(),
			map[string]any{"enabled": true}, s.tokenFor(s.ownerID))
		s.Equal(http.StatusNoContent, rec.Code)
		s.True(s.slotEnabled())
	})

	s.Run("error: 403 Forbidden for non-owners", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.slotPath(),
			map[string]any{"enabled": false}, s.tokenFor(s.producerID))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not allowed")
		s.True(s.slotEnabled())
	})

	s.Run("error: 400 Bad Request when the enabled flag is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.slotPath(),
			map[string]any{}, s.tokenFor(s.ownerID))
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.slotPath(),
			map[string]any{"enabled": false}, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
