package model

type SpoolAnalysis struct {
	BrandGuess                *string  `json:"brand_guess"`
	MaterialType              *string  `json:"material_type"`
	HolePatternType           *string  `json:"hole_pattern_type"`
	EstimatedEmptyWeightGrams *float64 `json:"estimated_empty_weight_grams"`
	Notes                     string   `json:"notes"`
}
