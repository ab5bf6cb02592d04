package handler

import (
	"context"
	"errors"
	"net/http"

	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/service"
	"lendsqr-admin/internal/transport/http/ez"
)

// mapErr 领域错误转为带状态码的 AErr
func mapErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ez.NotFound(err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		return ez.BadRequest(err.Error())
	case errors.Is(err, domain.ErrDuplicateID):
		return ez.Conflict(err.Error())
	case errors.Is(err, service.ErrBadCredentials):
		return ez.Unauthorized(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return &ez.AErr{Code: http.StatusGatewayTimeout, Msg: "timeout", Err: err}
	}
	return ez.Internal("internal error", err)
}
