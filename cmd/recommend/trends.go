package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/gigmatch/internal/domain/insights"
)

func newTrendsCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Report skill demand and budgets over the gigs dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, stop, err := startService(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer stop()

			trends, err := svc.Trends(cmd.Context())
			if err != nil {
				return err
			}
			if flags.json {
				return printJSON(cmd.OutOrStdout(), trends)
			}
			return printTrends(cmd.OutOrStdout(), trends, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of skills to list")
	return cmd
}

func printTrends(w io.Writer, t insights.Trends, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "records\t%d\n\nSKILL\tGIGS\tTRENDING\n", t.Records)
	for i, s := range t.Skills {
		if i == limit {
			break
		}
		trending := ""
		if t.SkillGap[s.Skill] == 1 {
			trending = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Skill, s.Count, trending)
	}

	fmt.Fprintln(tw, "\nCATEGORY\tAVG BUDGET")
	for _, k := range sortedKeys(t.BudgetByCategory) {
		fmt.Fprintf(tw, "%s\t%.0f\n", k, t.BudgetByCategory[k])
	}

	fmt.Fprintln(tw, "\nPLATFORM\tGIGS\tAVG BUDGET")
	for _, k := range sortedKeys(t.BudgetByPlatform) {
		fmt.Fprintf(tw, "%s\t%d\t%.0f\n", k, t.PlatformCounts[k], t.BudgetByPlatform[k])
	}
	return tw.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
