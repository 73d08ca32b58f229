package main

import (
	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the stored record of a spool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.spoolService()
			if err != nil {
				return err
			}
			rec, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := rec.CatalogJSON()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
