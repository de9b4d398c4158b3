package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/gigmatch/internal/domain/model"
	scoring "github.com/okian/gigmatch/internal/domain/scoring"
	"github.com/okian/gigmatch/internal/domain/textindex"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSkillOverlap(t *testing.T) {
	Convey("Given two skill lists", t, func() {
		Convey("When they share one of three distinct skills", func() {
			So(scoring.SkillOverlap([]string{"python", "sql"}, []string{"python", "java"}), ShouldAlmostEqual, 1.0/3.0, 1e-12)
		})

		Convey("When they differ only in case and whitespace", func() {
			So(scoring.SkillOverlap([]string{" Python", "SQL"}, []string{"python", "sql "}), ShouldEqual, 1.0)
		})

		Convey("When the lists have different sizes", func() {
			a := []string{"python", "sql"}
			b := []string{"python", "java", "go"}
			ab := scoring.SkillOverlap(a, b)

			Convey("Then the overlap is symmetric and bounded", func() {
				So(ab, ShouldEqual, scoring.SkillOverlap(b, a))
				So(ab, ShouldAlmostEqual, 0.25, 1e-12)
				So(ab, ShouldBeBetweenOrEqual, 0, 1)
				So(scoring.SkillOverlap(b, b), ShouldEqual, 1.0)
			})
		})

		Convey("When either side is empty", func() {
			So(scoring.SkillOverlap(nil, []string{"go"}), ShouldEqual, 0)
			So(scoring.SkillOverlap([]string{"go"}, []string{}), ShouldEqual, 0)
		})
	})
}

func TestExperienceFit(t *testing.T) {
	Convey("Given experience levels", t, func() {
		Convey("Then entry favors two years or fewer", func() {
			So(scoring.ExperienceFit(0, "Entry"), ShouldEqual, 1.0)
			So(scoring.ExperienceFit(2, "entry level"), ShouldEqual, 1.0)
			So(scoring.ExperienceFit(3, "Entry"), ShouldEqual, 0.5)
		})

		Convey("Then mid favors three to five years", func() {
			So(scoring.ExperienceFit(2, "Mid-level"), ShouldEqual, 0.7)
			So(scoring.ExperienceFit(3, "Mid-level"), ShouldEqual, 1.0)
			So(scoring.ExperienceFit(5, "mid"), ShouldEqual, 1.0)
			So(scoring.ExperienceFit(6, "Mid-level"), ShouldEqual, 0.7)
		})

		Convey("Then senior favors more than five years", func() {
			So(scoring.ExperienceFit(5, "Senior"), ShouldEqual, 0.3)
			So(scoring.ExperienceFit(6, "Senior"), ShouldEqual, 1.0)
		})

		Convey("Then anything else is neutral", func() {
			So(scoring.ExperienceFit(4, ""), ShouldEqual, 0.5)
			So(scoring.ExperienceFit(4, "Lead"), ShouldEqual, 0.5)
		})
	})
}

func TestEducationFit(t *testing.T) {
	Convey("Given education requirements", t, func() {
		Convey("Then meeting or exceeding the requirement is a full fit", func() {
			So(scoring.EducationFit("PhD in Physics", "PhD"), ShouldEqual, 1.0)
			So(scoring.EducationFit("Master's", "Bachelor's"), ShouldEqual, 1.0)
			So(scoring.EducationFit("PhD", "Master's"), ShouldEqual, 1.0)
		})

		Convey("Then falling short depends on the required tier", func() {
			So(scoring.EducationFit("Master's", "PhD"), ShouldEqual, 0.3)
			So(scoring.EducationFit("Bachelor's", "Master's degree"), ShouldEqual, 0.5)
			So(scoring.EducationFit("High school", "Bachelor's"), ShouldEqual, 0.3)
		})

		Convey("Then a missing or unknown requirement is neutral", func() {
			So(scoring.EducationFit("PhD", ""), ShouldEqual, 0.5)
			So(scoring.EducationFit("", "Diploma"), ShouldEqual, 0.5)
		})
	})
}

func TestWeights(t *testing.T) {
	Convey("Given weights", t, func() {
		Convey("Then the job defaults sum to 1.2 and normalize to 1", func() {
			w := scoring.JobWeights()
			So(w.Sum(), ShouldAlmostEqual, 1.2, 1e-12)
			So(w.Normalized().Sum(), ShouldAlmostEqual, 1.0, 1e-12)
			So(w.Normalized().Skills, ShouldAlmostEqual, 0.5/1.2, 1e-12)
		})

		Convey("Then the static gig defaults follow the low feedback split", func() {
			w := scoring.GigWeights()
			So(w.Text, ShouldAlmostEqual, 0.4, 1e-12)
			So(w.Trending, ShouldAlmostEqual, 0.2, 1e-12)
			So(w.Rating, ShouldAlmostEqual, 0.2, 1e-12)
		})

		Convey("Then negative or all-zero weights are rejected", func() {
			So(errors.Is(scoring.Weights{Skills: -1, Text: 1}.Validate(), scoring.ErrInvalidWeights), ShouldBeTrue)
			So(errors.Is(scoring.Weights{}.Validate(), scoring.ErrInvalidWeights), ShouldBeTrue)
		})
	})
}

func TestScorer(t *testing.T) {
	Convey("Given a job scorer with a fitted index", t, func() {
		ix, err := textindex.Fit([]string{"build data pipelines in python", "design react frontends"})
		So(err, ShouldBeNil)
		scorer, err := scoring.New(scoring.WithSimilarity(ix))
		So(err, ShouldBeNil)

		record := model.Record{
			ID:              "j1",
			Description:     "build data pipelines in python",
			RequiredSkills:  []string{"python", "sql"},
			ExperienceLevel: "Mid-level",
			EducationLevel:  "Bachelor's",
		}
		profile := model.Profile{
			ID:                "u1",
			Skills:            []string{"python", "java"},
			ExperienceYears:   4,
			Education:         "Master's",
			ExperienceDetails: "I build data pipelines in python",
		}

		Convey("When the profile is scored", func() {
			b := scorer.Score(profile, record)

			Convey("Then each sub-score and the normalized composite are reported", func() {
				So(b.Skills, ShouldAlmostEqual, 1.0/3.0, 1e-12)
				So(b.Experience, ShouldEqual, 1.0)
				So(b.Education, ShouldEqual, 1.0)
				So(b.Text, ShouldAlmostEqual, 1.0, 1e-9)
				want := (0.5*(1.0/3.0) + 0.3 + 0.2 + 0.2) / 1.2
				So(b.Total, ShouldAlmostEqual, want, 1e-9)
			})

			Convey("Then scoring is deterministic", func() {
				So(scorer.Score(profile, record), ShouldResemble, b)
			})
		})

		Convey("When the profile has no experience details", func() {
			profile.ExperienceDetails = ""
			So(scorer.Score(profile, record).Text, ShouldEqual, 0)
		})
	})

	Convey("Given invalid weights", t, func() {
		_, err := scoring.New(scoring.WithWeights(scoring.Weights{}))
		So(errors.Is(err, scoring.ErrInvalidWeights), ShouldBeTrue)
	})
}

func TestFeedbackPolicy(t *testing.T) {
	Convey("Given the adaptive gig policy", t, func() {
		scorer, err := scoring.New(
			scoring.WithFeedbackPolicy(scoring.DefaultFeedbackPolicy()),
			scoring.WithTrendingSkills([]string{"React", "Python"}),
			scoring.WithTextField(model.TextSkills),
		)
		So(err, ShouldBeNil)

		Convey("When ten or fewer feedback rows exist", func() {
			s := scorer.WithFeedback(model.NewFeedbackSummary(nil, 10))

			Convey("Then the low feedback weight applies", func() {
				So(s.RawWeights().Rating, ShouldAlmostEqual, 0.2, 1e-12)
				So(s.RawWeights().Text, ShouldAlmostEqual, 0.4, 1e-12)
			})
		})

		Convey("When more than ten rows exist", func() {
			s := scorer.WithFeedback(model.NewFeedbackSummary(map[string]float64{"g1": 5}, 11))

			Convey("Then the high feedback weight applies without mutating the base scorer", func() {
				So(s.RawWeights().Rating, ShouldAlmostEqual, 0.3, 1e-12)
				So(s.RawWeights().Trending, ShouldAlmostEqual, 0.15, 1e-12)
				So(scorer.RawWeights().Rating, ShouldAlmostEqual, 0.2, 1e-12)
			})

			Convey("Then rated records use their mean and others the neutral default", func() {
				rated := s.Score(model.Profile{ID: "u"}, model.Record{ID: "g1", RequiredSkills: []string{"react", "css"}})
				unrated := s.Score(model.Profile{ID: "u"}, model.Record{ID: "g2"})
				So(rated.Rating, ShouldEqual, 1.0)
				So(rated.Trending, ShouldEqual, 0.5)
				So(unrated.Rating, ShouldAlmostEqual, 0.6, 1e-12)
				So(rated.Total, ShouldBeLessThanOrEqualTo, 1.0)
			})
		})

		Convey("When the policy would drive a weight negative", func() {
			p := scoring.DefaultFeedbackPolicy()
			p.HighWeight = 0.9
			_, err := scoring.New(scoring.WithFeedbackPolicy(p))
			So(errors.Is(err, scoring.ErrInvalidWeights), ShouldBeTrue)
		})
	})
}
