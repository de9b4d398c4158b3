package insights_test

import (
	"strings"
	"testing"

	"github.com/okian/gigmatch/internal/domain/insights"
	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func sample() *model.Dataset {
	ds, err := model.NewDataset([]model.Record{
		{ID: "1", Title: "Landing page", Category: "Web", Platform: "Upwork", Budget: 600, RequiredSkills: []string{"React", "CSS"}},
		{ID: "2", Title: "Chatbot", Category: "AI", Platform: "Fiverr", Budget: 1200, RequiredSkills: []string{"Python", "Generative AI"}},
		{ID: "3", Title: "Dashboard", Category: "Web", Platform: "Upwork", Budget: 800, RequiredSkills: []string{"React", "TypeScript"}},
	})
	if err != nil {
		panic(err)
	}
	return ds
}

func TestAnalyze(t *testing.T) {
	convey.Convey("Given a gigs dataset", t, func() {
		tr := insights.Analyze(sample(), insights.DefaultTrendingSkills)

		convey.Convey("Then skill demand is counted and ordered by count", func() {
			convey.So(tr.Records, convey.ShouldEqual, 3)
			convey.So(tr.Skills[0], convey.ShouldResemble, insights.SkillCount{Skill: "react", Count: 2})
			convey.So(tr.Skills, convey.ShouldHaveLength, 5)
		})

		convey.Convey("Then budgets are averaged per category and platform", func() {
			convey.So(tr.BudgetByCategory["Web"], convey.ShouldEqual, 700)
			convey.So(tr.BudgetByCategory["AI"], convey.ShouldEqual, 1200)
			convey.So(tr.BudgetByPlatform["Upwork"], convey.ShouldEqual, 700)
			convey.So(tr.PlatformCounts["Upwork"], convey.ShouldEqual, 2)
		})

		convey.Convey("Then trending skills weigh fully in the skill gap", func() {
			convey.So(tr.SkillGap["react"], convey.ShouldEqual, 1.0)
			convey.So(tr.SkillGap["css"], convey.ShouldEqual, 0.5)
		})
	})
}

func TestSkillTips(t *testing.T) {
	convey.Convey("Given ranked records and a profile", t, func() {
		records := sample().All()

		convey.Convey("When the profile lacks some skills", func() {
			missing := insights.MissingSkills([]string{"react", "Python"}, records)

			convey.Convey("Then missing skills are listed once in first-seen order", func() {
				convey.So(missing, convey.ShouldResemble, []string{"css", "generative ai", "typescript"})
			})

			convey.Convey("Then known skills get curated resources and others the fallback", func() {
				tips := insights.SkillTips(missing)
				convey.So(tips[0].Resource, convey.ShouldEqual, "Explore Udemy or Coursera courses.")
				convey.So(tips[1].Resource, convey.ShouldContainSubstring, "huggingface.co")

				text := insights.FormatTips(tips)
				convey.So(strings.HasPrefix(text, "To unlock high-paying gigs"), convey.ShouldBeTrue)
				convey.So(text, convey.ShouldContainSubstring, "- typescript: Study TypeScript handbook")
			})
		})

		convey.Convey("When nothing is missing", func() {
			convey.So(insights.FormatTips(nil), convey.ShouldContainSubstring, "top-tier")
		})
	})
}

func TestNewPitch(t *testing.T) {
	convey.Convey("Given a gig", t, func() {
		p := insights.NewPitch(model.Record{Title: "Chatbot", RequiredSkills: []string{"python", "generative ai"}})

		convey.So(p.Summary, convey.ShouldContainSubstring, "'Chatbot' requires skills like python, generative ai")
		convey.So(p.Pitch, convey.ShouldStartWith, "Apply for 'Chatbot'")
		convey.So(p.Template, convey.ShouldStartWith, "Dear Client,\n")
		convey.So(p.Template, convey.ShouldEndWith, "[Your Name]")
	})
}
