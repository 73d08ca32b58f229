package model

import (
	"bytes"
	"encoding/json"
)

// SpoolRecord is the persisted catalog entry. Optional fields are nil when the
// contributor did not supply them and are then left out of the JSON document.
type SpoolRecord struct {
	Brand                 string   `json:"brand"`
	Type                  string   `json:"type"`
	Description           *string  `json:"description,omitempty"`
	FilamentDiameterMm    *float64 `json:"filamentDiameterMm,omitempty"`
	FilamentWeightGrams   *float64 `json:"filamentWeightGrams,omitempty"`
	EmptySpoolWeightGrams *float64 `json:"emptySpoolWeightGrams,omitempty"`
	Refillable            *bool    `json:"refillable,omitempty"`
	Image                 string   `json:"image"`
}

// CatalogJSON renders the record as written to spools/<slug>.json.
func (r *SpoolRecord) CatalogJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type ContributionResult struct {
	ID        string      `json:"id"`
	JSONPath  string      `json:"json_path"`
	ImagePath string      `json:"image_path"`
	Spool     SpoolRecord `json:"spool"`
}

type CatalogEntry struct {
	ID    string      `json:"id"`
	Spool SpoolRecord `json:"spool"`
}

// CatalogFile is one committed catalog artifact, keyed relative to the catalog root.
type CatalogFile struct {
	Key         string
	ContentType string
	Data        []byte
}
