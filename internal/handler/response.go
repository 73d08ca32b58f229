package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/spool-backend/internal/repository"
	"github.com/shinyyama/spool-backend/internal/reqctx"
	"github.com/shinyyama/spool-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// respondError maps service and catalog errors onto the error envelope.
func respondError(c echo.Context, err error) error {
	rid := reqctx.RID(c.Request().Context())
	var (
		ve *service.ValidationError
		se *repository.StorageError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_error", ve.Error()))
	case errors.Is(err, service.ErrMissingAsset):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("missing_image", err.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "spool not found"))
	case errors.As(err, &se):
		log.Printf("[http] rid=%s stage=storage_error op=%s path=%s err=%v", rid, se.Op, se.Path, se.Err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_error", "failed to store spool"))
	default:
		log.Printf("[http] rid=%s stage=internal_error err=%v", rid, err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "unexpected error"))
	}
}
