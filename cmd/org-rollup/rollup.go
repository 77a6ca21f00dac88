package main

import (
	"context"

	"github.com/iota-uz/org-rollup/modules/org/infrastructure/loader"
	"github.com/iota-uz/org-rollup/modules/org/services"
	"github.com/iota-uz/org-rollup/pkg/configuration"
)

// buildRollup checks both inputs exist before reading either of them.
func buildRollup(ctx context.Context, cfg *configuration.Configuration, orgFile, userFile string) (*services.Rollup, error) {
	for _, p := range []string{orgFile, userFile} {
		if err := loader.ValidateInputFile(ctx, p); err != nil {
			return nil, classify(err)
		}
	}
	orgs, err := loader.LoadOrgs(ctx, orgFile)
	if err != nil {
		return nil, classify(err)
	}
	users, err := loader.LoadUsers(ctx, userFile)
	if err != nil {
		return nil, classify(err)
	}

	svc := services.NewRollupService(services.RollupOptions{StrictOrphans: cfg.StrictOrphans})
	r, err := svc.Build(ctx, orgs, users)
	if err != nil {
		return nil, classify(err)
	}
	return r, nil
}
