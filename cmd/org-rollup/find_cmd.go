package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iota-uz/org-rollup/modules/org/infrastructure/loader"
	"github.com/iota-uz/org-rollup/modules/org/services"
)

type findOutput struct {
	Command string              `json:"command"`
	Query   string              `json:"query"`
	Matches []services.OrgMatch `json:"matches"`
}

func newFindCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <org-hierarchy-file> <query>",
		Short: "Fuzzy-search org names and print each match with its path from the root",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.TrimSpace(args[1])
			if query == "" {
				return withCode(exitUsage, fmt.Errorf("query must not be empty"))
			}
			orgs, err := loader.LoadOrgs(ctx, args[0])
			if err != nil {
				return classify(err)
			}
			r, err := services.NewRollupService(services.RollupOptions{}).Build(ctx, orgs, nil)
			if err != nil {
				return classify(err)
			}
			return writeJSONLine(cmd.OutOrStdout(), findOutput{
				Command: "find",
				Query:   query,
				Matches: r.FindOrgs(query, limit),
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of matches (0 = all)")
	return cmd
}
