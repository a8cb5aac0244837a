package larekserver

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/web-larek/internal/domains/catalog/application"
	catalogports "github.com/Apurer/web-larek/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/web-larek/internal/domains/orders/application"
	ordersports "github.com/Apurer/web-larek/internal/domains/orders/ports"
	apierrors "github.com/Apurer/web-larek/internal/shared/errors"
)

// responder maps catalog and orders errors to RFC 7807 problems.
var responder = apierrors.NewResponder(mapCatalogError, mapOrderError)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithMessage("NotFound"), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("Idempotency-Key was already used for a different order"), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithMessage("NotFound"), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), ordersapp.ErrInvalidInput.Error()+": ")
		return apierrors.ErrValidation.WithDetail(err.Error()).WithMessage(msg), true
	}
	return apierrors.ProblemDetail{}, false
}
