package main

import (
	"github.com/spf13/cobra"

	"github.com/shinyyama/spool-backend/internal/config"
	"github.com/shinyyama/spool-backend/internal/repository"
	"github.com/shinyyama/spool-backend/internal/service"
)

type commandContext struct {
	repoRoot   string
	catalogDir string
	cfg        *config.Config
}

// spoolService opens the local catalog; flags override the environment.
func (c *commandContext) spoolService() (service.SpoolService, error) {
	if c.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		c.cfg = cfg
	}
	if c.repoRoot != "" {
		c.cfg.RepoRoot = c.repoRoot
	}
	if c.catalogDir != "" {
		c.cfg.CatalogDir = c.catalogDir
	}
	repo := repository.NewFileSpoolRepository(c.cfg.RepoRoot, c.cfg.CatalogRoot(), c.cfg.LockRoot())
	return service.NewSpoolService(repo, nil), nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "spoolctl",
		Short:         "Manage the filament spool catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.repoRoot, "repo-root", "", "Repository root paths are reported against (default $REPO_ROOT)")
	rootCmd.PersistentFlags().StringVar(&ctx.catalogDir, "catalog-dir", "", "Catalog directory (default $CATALOG_DIR)")

	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))

	return rootCmd
}
