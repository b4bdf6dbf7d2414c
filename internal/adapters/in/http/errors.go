package http

import (
	"errors"
	"net/http"

	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Principal headers set by the campus API gateway after authentication.
const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// principalFrom reconstructs the authenticated principal from the gateway
// headers. Requests without both headers are rejected before any use case runs.
func principalFrom(ctx echo.Context) (kernel.Principal, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return kernel.Principal{}, errs.NewValueIsInvalidErrorWithCause(headerUserID, err)
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get(headerUserRole))
	if err != nil {
		return kernel.Principal{}, err
	}

	return kernel.NewPrincipal(id, role)
}

// respondError maps application and domain errors onto HTTP status codes.
// Unrecognized errors surface as 500 without leaking internal detail.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return writeError(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return writeError(ctx, http.StatusConflict, "concurrent update, retry the request")
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, agent.ErrAgentIsBusy):
		return writeError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrMultiShopCart):
		return writeError(ctx, http.StatusBadRequest, err.Error())
	default:
		return writeError(ctx, http.StatusInternalServerError, "internal error")
	}
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}
