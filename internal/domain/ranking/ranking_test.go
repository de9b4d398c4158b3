package ranking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/ranking"
	"github.com/okian/gigmatch/internal/domain/scoring"
	"github.com/okian/gigmatch/internal/domain/textindex"
	. "github.com/smartystreets/goconvey/convey"
)

func gigDataset() *model.Dataset {
	ds, err := model.NewDataset([]model.Record{
		{ID: "1", Title: "Landing page", Category: "Web", Budget: 500, RequiredSkills: []string{"react", "css"}},
		{ID: "2", Title: "Chatbot", Category: "AI", Budget: 1500, RequiredSkills: []string{"python", "generative ai"}},
		{ID: "3", Title: "Dashboard", Category: "Web", Budget: 700, RequiredSkills: []string{"react", "typescript"}},
	})
	if err != nil {
		panic(err)
	}
	return ds
}

func gigCatalog() *ranking.Catalog {
	c, err := ranking.NewCatalog("gigs", gigDataset(),
		ranking.WithTextField(model.TextSkills),
		ranking.WithScoring(
			scoring.WithFeedbackPolicy(scoring.DefaultFeedbackPolicy()),
			scoring.WithTrendingSkills([]string{"react", "python", "typescript", "generative ai"}),
		),
		ranking.WithFilters(ranking.BudgetFloor(), ranking.Category()),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func TestRankGigs(t *testing.T) {
	Convey("Given a gigs catalog with Web, AI and Web records", t, func() {
		catalog := gigCatalog()
		ctx := context.Background()

		Convey("When the profile wants Web gigs paying at least 600", func() {
			p := model.Profile{ID: "u1", Skills: []string{"react"}, MinBudget: 600, PreferredCategories: []string{"web"}}
			results, err := catalog.Rank(ctx, p, 10)

			Convey("Then only the 700 Web gig survives the hard filters", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 1)
				So(results[0].Record.ID, ShouldEqual, "3")
			})
		})

		Convey("When nothing passes the filters", func() {
			p := model.Profile{ID: "u1", MinBudget: 5000}
			results, err := catalog.Rank(ctx, p, 5)

			Convey("Then the result is empty and not an error", func() {
				So(err, ShouldBeNil)
				So(results, ShouldNotBeNil)
				So(results, ShouldBeEmpty)
			})
		})

		Convey("When top_n is not positive", func() {
			_, err := catalog.Rank(ctx, model.Profile{ID: "u1"}, 0)
			So(errors.Is(err, ranking.ErrInvalidInput), ShouldBeTrue)

			_, err = catalog.Rank(ctx, model.Profile{ID: "u1"}, -3)
			So(errors.Is(err, ranking.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When the profile is invalid", func() {
			_, err := catalog.Rank(ctx, model.Profile{}, 3)
			So(errors.Is(err, ranking.ErrInvalidInput), ShouldBeTrue)
			So(errors.Is(err, model.ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("When top_n is smaller than the eligible set", func() {
			p := model.Profile{ID: "u1", Skills: []string{"React", "TypeScript"}}
			results, err := catalog.Rank(ctx, p, 2)

			Convey("Then results are truncated and sorted descending", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 2)
				So(results[0].Record.ID, ShouldEqual, "3")
				So(results[0].Score, ShouldBeGreaterThanOrEqualTo, results[1].Score)
			})
		})

		Convey("When the same request is ranked twice", func() {
			p := model.Profile{ID: "u1", Skills: []string{"python", "react"}}
			first, _ := catalog.Rank(ctx, p, 3)
			second, _ := catalog.Rank(ctx, p, 3)

			Convey("Then the ordering is identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When ranking with a feedback snapshot", func() {
			p := model.Profile{ID: "u1"}
			summary := model.NewFeedbackSummary(map[string]float64{"1": 5, "3": 1}, 12)
			results, err := catalog.WithFeedback(summary).Rank(ctx, p, 3)

			Convey("Then the highly rated record gains on the poorly rated one", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 3)
				So(results[0].Breakdown.Rating, ShouldEqual, 1.0)
				for _, r := range results {
					if r.Record.ID == "3" {
						So(r.Breakdown.Rating, ShouldAlmostEqual, 0.2, 1e-12)
					}
				}
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := catalog.Rank(cctx, model.Profile{ID: "u1"}, 3)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestRankTies(t *testing.T) {
	Convey("Given records that score identically", t, func() {
		ds, _ := model.NewDataset([]model.Record{
			{ID: "b", Description: "go developer", RequiredSkills: []string{"go"}},
			{ID: "a", Description: "go developer", RequiredSkills: []string{"go"}},
			{ID: "c", Description: "go developer", RequiredSkills: []string{"go"}},
		})
		catalog, err := ranking.NewCatalog("jobs", ds)
		So(err, ShouldBeNil)

		Convey("Then ties keep dataset order", func() {
			results, err := catalog.Rank(context.Background(), model.Profile{ID: "u", Skills: []string{"go"}}, 3)
			So(err, ShouldBeNil)
			So([]string{results[0].Record.ID, results[1].Record.ID, results[2].Record.ID}, ShouldResemble, []string{"b", "a", "c"})
		})
	})
}

func TestRankJobs(t *testing.T) {
	Convey("Given job postings in several locations", t, func() {
		ds, _ := model.NewDataset([]model.Record{
			{ID: "j1", Location: "Berlin, Germany", Description: "python data engineer", RequiredSkills: []string{"python", "sql"}, ExperienceLevel: "Mid-level", EducationLevel: "Bachelor's"},
			{ID: "j2", Location: "Remote", Description: "java backend engineer", RequiredSkills: []string{"java"}, ExperienceLevel: "Senior", EducationLevel: "Master's"},
			{ID: "j3", Location: "Munich, Germany", Description: "react frontend engineer", RequiredSkills: []string{"react"}, ExperienceLevel: "Entry", EducationLevel: "Bachelor's"},
		})
		catalog, err := ranking.NewCatalog("jobs", ds, ranking.WithFilters(ranking.Location()))
		So(err, ShouldBeNil)

		Convey("When the profile prefers Germany", func() {
			p := model.Profile{
				ID:                 "u",
				Skills:             []string{"Python", "SQL"},
				ExperienceYears:    4,
				Education:          "Bachelor's",
				ExperienceDetails:  "python data pipelines",
				PreferredLocations: []string{"germany"},
			}
			results, err := catalog.Rank(context.Background(), p, 5)

			Convey("Then only German postings are ranked and the best fit leads", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 2)
				So(results[0].Record.ID, ShouldEqual, "j1")
				So(results[0].Breakdown.Skills, ShouldEqual, 1.0)
				So(results[0].Score, ShouldBeLessThanOrEqualTo, 1.0)
			})
		})
	})
}

func TestNewCatalog(t *testing.T) {
	Convey("Given an empty dataset", t, func() {
		ds, _ := model.NewDataset(nil)
		_, err := ranking.NewCatalog("empty", ds)

		Convey("Then the catalog is a configuration error", func() {
			So(errors.Is(err, ranking.ErrConfiguration), ShouldBeTrue)
			So(errors.Is(err, textindex.ErrNoDocuments), ShouldBeTrue)
		})
	})

	Convey("Given a dataset", t, func() {
		catalog := gigCatalog()
		So(catalog.Name(), ShouldEqual, "gigs")
		So(catalog.Dataset().Len(), ShouldEqual, 3)
		So(catalog.Index().Documents(), ShouldEqual, 3)
	})
}

func TestFilters(t *testing.T) {
	Convey("Given hard filters", t, func() {
		r := model.Record{Budget: 700, Category: "Web", Location: "Lagos, Nigeria"}

		So(ranking.BudgetFloor()(model.Profile{}, r), ShouldBeTrue)
		So(ranking.BudgetFloor()(model.Profile{MinBudget: 700}, r), ShouldBeTrue)
		So(ranking.BudgetFloor()(model.Profile{MinBudget: 701}, r), ShouldBeFalse)

		So(ranking.Category()(model.Profile{PreferredCategories: []string{"WEB"}}, r), ShouldBeTrue)
		So(ranking.Category()(model.Profile{PreferredCategories: []string{"AI"}}, r), ShouldBeFalse)

		So(ranking.Location()(model.Profile{PreferredLocations: []string{"nigeria"}}, r), ShouldBeTrue)
		So(ranking.Location()(model.Profile{PreferredLocations: []string{"Kenya"}}, r), ShouldBeFalse)
		So(ranking.Location()(model.Profile{}, r), ShouldBeTrue)
	})
}
