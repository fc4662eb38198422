package api

import (
	"errors"
	"net/http"

	"partage/internal/handler/httperr"
	"partage/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with the detail withheld.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrOrderNotFound),
		errors.Is(err, errs.ErrOfferNotFound),
		errors.Is(err, errs.ErrParticipantNotFound),
		errors.Is(err, errs.ErrLineItemNotFound),
		errors.Is(err, errs.ErrPickupSlotNotFound),
		errors.Is(err, errs.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)

	case errors.Is(err, errs.ErrEmptySelection),
		errors.Is(err, errs.ErrMissingActor),
		errors.Is(err, errs.ErrIncompleteAddress),
		errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)

	case errors.Is(err, errs.ErrWrongActor):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed", nil)

	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrMinWeightNotReached),
		errors.Is(err, errs.ErrOrderNotReceivable),
		errors.Is(err, errs.ErrParticipantNotActive),
		errors.Is(err, errs.ErrLotMismatch),
		errors.Is(err, errs.ErrInsufficientStock):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)

	case errors.Is(err, errs.ErrLedgerInconsistent):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Order ledger is inconsistent", nil)

	case errors.Is(err, errs.ErrEmailConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)

	case errors.Is(err, errs.ErrAuthenticationFailed):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Authentication failed", nil)

	case errors.Is(err, errs.ErrGeocodingFailed),
		errors.Is(err, errs.ErrPaymentFailed),
		errors.Is(err, errs.ErrCatalogUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Upstream service failed", nil)

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
