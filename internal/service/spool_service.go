package service

import (
	"context"
	"errors"
	"log"
	"math"
	"mime"
	"strings"

	"github.com/shinyyama/spool-backend/internal/model"
	"github.com/shinyyama/spool-backend/internal/repository"
	"github.com/shinyyama/spool-backend/internal/reqctx"
	"github.com/shinyyama/spool-backend/internal/slug"
)

// SpoolSubmission is a contributed spool before normalization. Nil optional
// fields were not supplied and stay absent from the stored record.
type SpoolSubmission struct {
	Brand                 string
	Type                  string
	Description           *string
	FilamentDiameterMm    *float64
	FilamentWeightGrams   *float64
	EmptySpoolWeightGrams *float64
	Refillable            *bool
	Image                 []byte
	ImageFilename         string
}

// CatalogMirror receives every committed entry. Failures are logged only;
// the local catalog stays authoritative.
type CatalogMirror interface {
	Publish(ctx context.Context, files []model.CatalogFile) error
}

type SpoolService interface {
	Submit(ctx context.Context, sub SpoolSubmission) (*model.ContributionResult, error)
	Get(ctx context.Context, id string) (*model.SpoolRecord, error)
	List(ctx context.Context) ([]model.CatalogEntry, error)
}

type spoolService struct {
	repo   repository.SpoolRepository
	mirror CatalogMirror
}

// NewSpoolService wires the catalog; mirror may be nil.
func NewSpoolService(repo repository.SpoolRepository, mirror CatalogMirror) SpoolService {
	return &spoolService{repo: repo, mirror: mirror}
}

func (s *spoolService) Submit(ctx context.Context, sub SpoolSubmission) (*model.ContributionResult, error) {
	rid := reqctx.RID(ctx)
	brand := strings.TrimSpace(sub.Brand)
	spoolType := strings.TrimSpace(sub.Type)
	if brand == "" {
		return nil, NewValidationError("brand", "must not be empty")
	}
	if spoolType == "" {
		return nil, NewValidationError("type", "must not be empty")
	}
	if err := validateMeasurements(sub); err != nil {
		return nil, err
	}
	if len(sub.Image) == 0 {
		return nil, ErrMissingAsset
	}

	id := slug.ForSpool(brand, spoolType)
	ctx = reqctx.WithSlug(ctx, id)
	ext := ImageExtension(sub.ImageFilename)
	record := assembleRecord(brand, spoolType, sub, s.repo.ImageRef(id, ext))

	res, err := s.repo.Put(ctx, id, record, sub.Image, ext)
	if err != nil {
		log.Printf("[contrib] rid=%s slug=%s stage=persist_fail err=%v", rid, id, err)
		return nil, err
	}
	log.Printf("[contrib] rid=%s slug=%s stage=persist_ok json=%s image=%s bytes=%d replaced=%v",
		rid, id, res.JSONPath, res.ImagePath, len(sub.Image), res.Replaced)

	s.publish(ctx, record, res, sub.Image, ext)

	return &model.ContributionResult{
		ID:        id,
		JSONPath:  res.JSONPath,
		ImagePath: res.ImagePath,
		Spool:     *record,
	}, nil
}

func (s *spoolService) Get(ctx context.Context, id string) (*model.SpoolRecord, error) {
	rec, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *spoolService) List(ctx context.Context) ([]model.CatalogEntry, error) {
	return s.repo.List(ctx)
}

func (s *spoolService) publish(ctx context.Context, record *model.SpoolRecord, res *repository.PutResult, image []byte, ext string) {
	if s.mirror == nil {
		return
	}
	rid, id := reqctx.RID(ctx), reqctx.Slug(ctx)
	payload, err := record.CatalogJSON()
	if err != nil {
		log.Printf("[mirror] rid=%s slug=%s stage=encode_fail err=%v", rid, id, err)
		return
	}
	files := []model.CatalogFile{
		{Key: res.ImageKey, ContentType: imageContentType(ext), Data: image},
		{Key: res.JSONKey, ContentType: "application/json", Data: payload},
	}
	if err := s.mirror.Publish(ctx, files); err != nil {
		log.Printf("[mirror] rid=%s slug=%s stage=mirror_fail err=%v", rid, id, err)
		return
	}
	log.Printf("[mirror] rid=%s slug=%s stage=mirror_ok files=%d", rid, id, len(files))
}

func assembleRecord(brand, spoolType string, sub SpoolSubmission, imageRef string) *model.SpoolRecord {
	rec := &model.SpoolRecord{
		Brand:                 brand,
		Type:                  spoolType,
		FilamentDiameterMm:    sub.FilamentDiameterMm,
		FilamentWeightGrams:   sub.FilamentWeightGrams,
		EmptySpoolWeightGrams: sub.EmptySpoolWeightGrams,
		Refillable:            sub.Refillable,
		Image:                 imageRef,
	}
	if sub.Description != nil {
		if desc := strings.TrimSpace(*sub.Description); desc != "" {
			rec.Description = &desc
		}
	}
	return rec
}

func validateMeasurements(sub SpoolSubmission) error {
	fields := []struct {
		name  string
		value *float64
	}{
		{"filamentDiameterMm", sub.FilamentDiameterMm},
		{"filamentWeightGrams", sub.FilamentWeightGrams},
		{"emptySpoolWeightGrams", sub.EmptySpoolWeightGrams},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		v := *f.value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValidationError(f.name, "must be a finite number")
		}
		if v < 0 {
			return NewValidationError(f.name, "must not be negative")
		}
	}
	return nil
}

func imageContentType(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
