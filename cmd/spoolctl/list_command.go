package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shinyyama/spool-backend/internal/model"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog spools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.spoolService()
			if err != nil {
				return err
			}
			entries, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
				return nil
			}
			headers, rows, aligns := spoolRows(entries)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}

func spoolRows(entries []model.CatalogEntry) ([]string, [][]string, []columnAlignment) {
	headers := []string{"ID", "Brand", "Type", "Diameter", "Weight", "Empty", "Refillable"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		s := e.Spool
		rows = append(rows, []string{
			e.ID,
			s.Brand,
			s.Type,
			formatFloat(s.FilamentDiameterMm, "mm"),
			formatFloat(s.FilamentWeightGrams, "g"),
			formatFloat(s.EmptySpoolWeightGrams, "g"),
			formatBool(s.Refillable),
		})
	}
	return headers, rows, aligns
}

func formatFloat(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

func formatBool(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "yes"
	default:
		return "no"
	}
}
