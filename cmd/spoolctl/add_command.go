package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinyyama/spool-backend/internal/service"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		sub         service.SpoolSubmission
		description string
		diameter    float64
		weight      float64
		emptyWeight float64
		refillable  bool
		imagePath   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a spool and its image to the catalog",
		Example: `  spoolctl add --brand Prusament --type PETG --image photo.jpg
  spoolctl add --brand Sunlu --type PLA --diameter 1.75 --refillable=false --image sunlu.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("description") {
				sub.Description = &description
			}
			if flags.Changed("diameter") {
				sub.FilamentDiameterMm = &diameter
			}
			if flags.Changed("weight") {
				sub.FilamentWeightGrams = &weight
			}
			if flags.Changed("empty-weight") {
				sub.EmptySpoolWeightGrams = &emptyWeight
			}
			if flags.Changed("refillable") {
				sub.Refillable = &refillable
			}
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				sub.Image = data
				sub.ImageFilename = filepath.Base(imagePath)
			}

			svc, err := ctx.spoolService()
			if err != nil {
				return err
			}
			res, err := svc.Submit(cmd.Context(), sub)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&sub.Brand, "brand", "", "Spool brand (required)")
	cmd.Flags().StringVar(&sub.Type, "type", "", "Filament material/type (required)")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "Filament diameter in mm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Filament weight in grams")
	cmd.Flags().Float64Var(&emptyWeight, "empty-weight", 0, "Empty spool weight in grams")
	cmd.Flags().BoolVar(&refillable, "refillable", false, "Whether the spool is refillable")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the spool image (required)")

	return cmd
}
