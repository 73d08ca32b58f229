package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/spool-backend/internal/model"
	"github.com/shinyyama/spool-backend/internal/reqctx"
	"github.com/shinyyama/spool-backend/internal/service"
)

type SpoolHandler struct {
	svc service.SpoolService
}

func NewSpoolHandler(svc service.SpoolService) *SpoolHandler {
	return &SpoolHandler{svc: svc}
}

type SpoolListResponse struct {
	Spools []model.CatalogEntry `json:"spools"`
	Total  int                  `json:"total"`
}

// Contribute handles POST /contrib/spool.
func (h *SpoolHandler) Contribute(c echo.Context) error {
	ctx := c.Request().Context()
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "expected multipart/form-data"))
	}
	sub, err := parseSpoolForm(form.Value)
	if err != nil {
		log.Printf("[contrib] rid=%s stage=rejected err=%v", reqctx.RID(ctx), err)
		return respondError(c, err)
	}
	image, filename, err := readUpload(c, fieldImage)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "failed to read image"))
	}
	sub.Image = image
	sub.ImageFilename = filename

	res, err := h.svc.Submit(ctx, sub)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *SpoolHandler) List(c echo.Context) error {
	entries, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SpoolListResponse{Spools: entries, Total: len(entries)})
}

func (h *SpoolHandler) Get(c echo.Context) error {
	rec, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}
