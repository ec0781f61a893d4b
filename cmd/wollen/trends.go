package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
)

func newTrendsCmd(configPath *string) *cobra.Command {
	var (
		limit  int
		from   int
		to     int
		output string
	)

	cmd := &cobra.Command{
		Use:   "trends <tag>",
		Short: "Count a tag's top tracks by release year",
		Example: `  # Decade of the top 200 rock tracks
  wollen trends rock --limit 200 --from 1990 --to 1999

  # YAML output
  wollen trends "hip hop" --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unsupported output format %q", output)
			}

			a, err := newApp(*configPath)
			if err != nil {
				return err
			}

			query := domain.TrendQuery{Tag: args[0], Limit: limit}
			if query.Limit <= 0 {
				query.Limit = a.cfg.Trends.DefaultLimit
			}
			if a.cfg.Trends.MaxLimit > 0 {
				query.Limit = min(query.Limit, a.cfg.Trends.MaxLimit)
			}
			if cmd.Flags().Changed("from") && from != 0 {
				query.FromYear = &from
			}
			if cmd.Flags().Changed("to") && to != 0 {
				query.ToYear = &to
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Server.TrendsTimeout)
			defer cancel()

			result, err := a.service.GetTagTrends(ctx, query)
			if err != nil {
				return err
			}
			return writeTrends(cmd.OutOrStdout(), result, output)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Number of tag tracks to inspect")
	cmd.Flags().IntVar(&from, "from", 0, "First year to count, inclusive (0 leaves it open)")
	cmd.Flags().IntVar(&to, "to", 0, "Last year to count, inclusive (0 leaves it open)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")

	return cmd
}

func writeTrends(w io.Writer, result *domain.TrendResult, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
