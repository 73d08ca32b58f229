package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestCatalogJSONElidesAbsentFields(t *testing.T) {
	rec := SpoolRecord{Brand: "Prusament", Type: "PETG", Image: "/images/spools/prusament-petg.jpg"}
	data, err := rec.CatalogJSON()
	if err != nil {
		t.Fatalf("CatalogJSON: %v", err)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		t.Fatalf("compact: %v", err)
	}
	want := `{"brand":"Prusament","type":"PETG","image":"/images/spools/prusament-petg.jpg"}`
	if compact.String() != want {
		t.Fatalf("got=%s want=%s", compact.String(), want)
	}
	if !strings.Contains(string(data), "\n  \"brand\": \"Prusament\"") {
		t.Fatalf("expected 2-space indentation, got %s", data)
	}
}

func TestCatalogJSONKeepsZeroValues(t *testing.T) {
	rec := SpoolRecord{
		Brand:                 "Sunlu",
		Type:                  "PLA",
		Description:           ptr(""),
		FilamentDiameterMm:    ptr(1.75),
		FilamentWeightGrams:   ptr(0.0),
		EmptySpoolWeightGrams: ptr(0.0),
		Refillable:            ptr(false),
		Image:                 "/images/spools/sunlu-pla.png",
	}
	data, err := rec.CatalogJSON()
	if err != nil {
		t.Fatalf("CatalogJSON: %v", err)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		t.Fatalf("compact: %v", err)
	}
	want := `{"brand":"Sunlu","type":"PLA","description":"","filamentDiameterMm":1.75,"filamentWeightGrams":0,"emptySpoolWeightGrams":0,"refillable":false,"image":"/images/spools/sunlu-pla.png"}`
	if compact.String() != want {
		t.Fatalf("got=%s want=%s", compact.String(), want)
	}
}

func TestCatalogJSONDoesNotEscapeHTML(t *testing.T) {
	rec := SpoolRecord{Brand: "A&B", Type: "<PLA>", Image: "/x.png"}
	data, err := rec.CatalogJSON()
	if err != nil {
		t.Fatalf("CatalogJSON: %v", err)
	}
	if !strings.Contains(string(data), `"A&B"`) || !strings.Contains(string(data), `"<PLA>"`) {
		t.Fatalf("unexpected escaping: %s", data)
	}
}

func TestSpoolAnalysisSerializesNulls(t *testing.T) {
	data, err := json.Marshal(SpoolAnalysis{Notes: "n"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"brand_guess":null,"material_type":null,"hole_pattern_type":null,"estimated_empty_weight_grams":null,"notes":"n"}`
	if string(data) != want {
		t.Fatalf("got=%s want=%s", data, want)
	}
}
