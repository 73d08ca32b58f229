package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/spool-backend/internal/service"
)

// Multipart field names of the contribution form.
const (
	fieldBrand            = "brand"
	fieldType             = "type"
	fieldDescription      = "description"
	fieldDiameter         = "filament_diameter_mm"
	fieldFilamentWeight   = "filament_weight_grams"
	fieldEmptySpoolWeight = "empty_spool_weight_grams"
	fieldRefillable       = "refillable"
	fieldImage            = "image"
)

func parseSpoolForm(values map[string][]string) (service.SpoolSubmission, error) {
	sub := service.SpoolSubmission{}
	sub.Brand, _ = formValue(values, fieldBrand)
	sub.Type, _ = formValue(values, fieldType)
	if v, ok := formValue(values, fieldDescription); ok && strings.TrimSpace(v) != "" {
		sub.Description = &v
	}

	var err error
	if sub.FilamentDiameterMm, err = formFloat(values, fieldDiameter); err != nil {
		return sub, err
	}
	if sub.FilamentWeightGrams, err = formFloat(values, fieldFilamentWeight); err != nil {
		return sub, err
	}
	if sub.EmptySpoolWeightGrams, err = formFloat(values, fieldEmptySpoolWeight); err != nil {
		return sub, err
	}
	if sub.Refillable, err = formBool(values, fieldRefillable); err != nil {
		return sub, err
	}
	return sub, nil
}

func formValue(values map[string][]string, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// formFloat treats a missing or blank field as absent.
func formFloat(values map[string][]string, key string) (*float64, error) {
	raw, ok := formValue(values, key)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, service.NewValidationError(key, "must be a number")
	}
	return &v, nil
}

// formBool treats a missing field as absent and a blank one as false.
func formBool(values map[string][]string, key string) (*bool, error) {
	raw, ok := formValue(values, key)
	if !ok {
		return nil, nil
	}
	var v bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "false", "0", "no", "off", "f", "n":
		v = false
	case "true", "1", "yes", "on", "t", "y":
		v = true
	default:
		return nil, service.NewValidationError(key, "must be a boolean")
	}
	return &v, nil
}

func readUpload(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}
