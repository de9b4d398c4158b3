package types_test

import (
	"testing"

	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/ranking"
	"github.com/okian/gigmatch/internal/domain/scoring"
	types "github.com/okian/gigmatch/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromResults(t *testing.T) {
	Convey("Given ranked results", t, func() {
		results := []ranking.Result{
			{Record: model.Record{ID: "3", Title: "Dashboard", Budget: 700, RequiredSkills: []string{"react"}}, Score: 0.9, Breakdown: scoring.Breakdown{Total: 0.9}},
			{Record: model.Record{ID: "1", Title: "Landing page", Budget: 500}, Score: 0.4, Breakdown: scoring.Breakdown{Total: 0.4}},
		}

		Convey("When they are converted without pitches", func() {
			entries := types.FromResults(results, false)

			Convey("Then ranks are 1-based and follow input order", func() {
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[0].RecordID, ShouldEqual, "3")
				So(entries[0].Skills, ShouldResemble, []string{"react"})
				So(entries[1].Rank, ShouldEqual, 2)
				So(entries[1].Score, ShouldEqual, 0.4)
				So(entries[1].Skills, ShouldNotBeNil)
				So(entries[0].Pitch, ShouldBeNil)
			})
		})

		Convey("When they are converted with pitches", func() {
			entries := types.FromResults(results, true)

			Convey("Then each entry carries its generated texts", func() {
				So(entries[0].Pitch, ShouldNotBeNil)
				So(entries[0].Pitch.Pitch, ShouldContainSubstring, "Dashboard")
			})
		})

		Convey("When there are no results", func() {
			So(types.FromResults(nil, true), ShouldBeEmpty)
		})
	})
}
