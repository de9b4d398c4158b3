package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/gigmatch/internal/adapters/dataset"
	app "github.com/okian/gigmatch/internal/app"
	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/types"
)

// profileFlags describe the requester when no profiles file is given.
type profileFlags struct {
	user       string
	profiles   string
	skills     []string
	years      int
	details    string
	education  string
	budget     float64
	categories []string
	locations  []string
	titles     []string
	top        int
}

func newRankCmd(flags *globalFlags, catalog string) *cobra.Command {
	pf := &profileFlags{}
	cmd := &cobra.Command{
		Use:   catalog,
		Short: "Rank " + catalog + " for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pf.profile()
			if err != nil {
				return err
			}
			svc, cfg, stop, err := startService(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer stop()

			top := pf.top
			if top == 0 {
				top = cfg.DefaultTopN
			}
			var recs types.Recommendations
			if catalog == app.CatalogJobs {
				recs, err = svc.RecommendJobs(cmd.Context(), p, top)
			} else {
				recs, err = svc.RecommendGigs(cmd.Context(), p, top)
			}
			if err != nil {
				return err
			}
			if flags.json {
				return printJSON(cmd.OutOrStdout(), recs)
			}
			return printRecommendations(cmd.OutOrStdout(), recs)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&pf.user, "user", "u", "cli", "user id; selects the profile when --profiles is set")
	f.StringVar(&pf.profiles, "profiles", "", "profiles file (csv, yaml or json)")
	f.StringSliceVarP(&pf.skills, "skills", "s", nil, "comma-separated skills")
	f.IntVar(&pf.years, "years", 0, "years of experience")
	f.StringVar(&pf.details, "details", "", "free-text experience details")
	f.StringVar(&pf.education, "education", "", "highest education, e.g. \"Master's\"")
	f.Float64Var(&pf.budget, "budget", 0, "minimum gig budget")
	f.StringSliceVar(&pf.categories, "categories", nil, "preferred gig categories")
	f.StringSliceVar(&pf.locations, "locations", nil, "preferred job locations")
	f.StringSliceVar(&pf.titles, "titles", nil, "preferred job titles")
	f.IntVarP(&pf.top, "top", "n", 0, "number of results (default from config)")
	return cmd
}

func (pf *profileFlags) profile() (model.Profile, error) {
	if pf.profiles == "" {
		return model.Profile{
			ID:                  pf.user,
			Skills:              pf.skills,
			ExperienceYears:     pf.years,
			ExperienceDetails:   pf.details,
			Education:           pf.education,
			MinBudget:           pf.budget,
			PreferredCategories: pf.categories,
			PreferredLocations:  pf.locations,
			PreferredTitles:     pf.titles,
		}, nil
	}

	profiles, err := dataset.LoadProfiles(pf.profiles)
	if err != nil {
		return model.Profile{}, err
	}
	for _, p := range profiles {
		if p.ID == pf.user {
			return p, nil
		}
	}
	return model.Profile{}, fmt.Errorf("user %q not found in %s", pf.user, pf.profiles)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRecommendations(w io.Writer, recs types.Recommendations) error {
	if len(recs.Entries) == 0 {
		_, err := fmt.Fprintf(w, "no %s match this profile\n", recs.Catalog)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if recs.Catalog == app.CatalogJobs {
		fmt.Fprintln(tw, "RANK\tID\tTITLE\tCOMPANY\tLOCATION\tSCORE")
		for _, e := range recs.Entries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.3f\n", e.Rank, e.RecordID, e.Title, e.Company, e.Location, e.Score)
		}
	} else {
		fmt.Fprintln(tw, "RANK\tID\tTITLE\tCATEGORY\tBUDGET\tSKILLS\tSCORE")
		for _, e := range recs.Entries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%s\t%.3f\n",
				e.Rank, e.RecordID, e.Title, e.Category, e.Budget, strings.Join(e.Skills, ", "), e.Score)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if recs.TipsText != "" {
		_, err := fmt.Fprintf(w, "\n%s\n", recs.TipsText)
		return err
	}
	return nil
}
