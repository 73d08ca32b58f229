package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/spool-backend/internal/service"
)

type AnalysisHandler struct {
	svc service.AnalysisService
}

func NewAnalysisHandler(svc service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// AnalyzeImage handles POST /analyze/spool-image.
func (h *AnalysisHandler) AnalyzeImage(c echo.Context) error {
	data, filename, err := readUpload(c, "file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("missing_image", "file is required"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "expected multipart/form-data"))
	}
	res, err := h.svc.Analyze(c.Request().Context(), filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
