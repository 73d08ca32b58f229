package service

import (
	"context"
	"fmt"

	"github.com/shinyyama/spool-backend/internal/model"
)

// AnalysisService infers spool attributes from a photo.
type AnalysisService interface {
	Analyze(ctx context.Context, filename string, image []byte) (*model.SpoolAnalysis, error)
}

type placeholderAnalysisService struct{}

// NewPlaceholderAnalysisService returns an analyzer that inspects nothing and
// leaves every inferred attribute unset.
func NewPlaceholderAnalysisService() AnalysisService {
	return placeholderAnalysisService{}
}

func (placeholderAnalysisService) Analyze(ctx context.Context, filename string, image []byte) (*model.SpoolAnalysis, error) {
	return &model.SpoolAnalysis{
		Notes: fmt.Sprintf("Placeholder analysis. Received file '%s'.", filename),
	}, nil
}
