package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/gigmatch/internal/adapters/repository"
	"github.com/okian/gigmatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rating(user, record string, r int) model.FeedbackEvent {
	return model.FeedbackEvent{EventID: user + record, UserID: user, RecordID: record, Rating: r}
}

func TestMemoryStoreRatings(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty memory store", t, func() {
		s := repository.NewMemoryStore()
		So(s.Count(ctx), ShouldEqual, 0)

		Convey("When two users rate the same gig", func() {
			So(s.PutRating(ctx, rating("alice", "gig-1", 5)), ShouldBeNil)
			So(s.PutRating(ctx, rating("bob", "gig-1", 2)), ShouldBeNil)

			Convey("Then the summary holds their mean", func() {
				sum, err := s.Summary(ctx)
				So(err, ShouldBeNil)
				mean, ok := sum.Mean("gig-1")
				So(ok, ShouldBeTrue)
				So(mean, ShouldEqual, 3.5)
				So(sum.Rows(), ShouldEqual, 2)
			})

			Convey("And one of them rates again", func() {
				So(s.PutRating(ctx, rating("bob", "gig-1", 4)), ShouldBeNil)

				Convey("Then the newer rating replaces the older one", func() {
					sum, _ := s.Summary(ctx)
					mean, _ := sum.Mean("gig-1")
					So(mean, ShouldEqual, 4.5)
					So(s.Count(ctx), ShouldEqual, 2)
				})
			})
		})

		Convey("When a rating is out of range or keys are missing", func() {
			So(errors.Is(s.PutRating(ctx, rating("alice", "gig-1", 6)), model.ErrInvalidRating), ShouldBeTrue)
			So(errors.Is(s.PutRating(ctx, rating("", "gig-1", 3)), repository.ErrInvalidKey), ShouldBeTrue)
			So(s.Count(ctx), ShouldEqual, 0)
		})

		Convey("When a summary is taken before more feedback arrives", func() {
			So(s.PutRating(ctx, rating("alice", "gig-1", 1)), ShouldBeNil)
			snap, _ := s.Summary(ctx)
			So(s.PutRating(ctx, rating("bob", "gig-1", 5)), ShouldBeNil)

			Convey("Then the snapshot does not change", func() {
				mean, _ := snap.Mean("gig-1")
				So(mean, ShouldEqual, 1)
				So(snap.Rows(), ShouldEqual, 1)
			})
		})
	})
}

func TestMemoryStoreSaved(t *testing.T) {
	ctx := context.Background()

	Convey("Given a memory store", t, func() {
		s := repository.NewMemoryStore()

		Convey("When a user saves records, one of them twice", func() {
			So(s.SaveRecord(ctx, "alice", "gig-2"), ShouldBeNil)
			So(s.SaveRecord(ctx, "alice", "gig-1"), ShouldBeNil)
			So(s.SaveRecord(ctx, "alice", "gig-2"), ShouldBeNil)

			Convey("Then each record is listed once in save order", func() {
				ids, err := s.SavedRecords(ctx, "alice")
				So(err, ShouldBeNil)
				So(ids, ShouldResemble, []string{"gig-2", "gig-1"})
			})

			Convey("Then other users see nothing", func() {
				ids, err := s.SavedRecords(ctx, "bob")
				So(err, ShouldBeNil)
				So(ids, ShouldBeEmpty)
			})
		})

		Convey("When keys are missing", func() {
			So(errors.Is(s.SaveRecord(ctx, "alice", ""), repository.ErrInvalidKey), ShouldBeTrue)
		})

		So(s.Close(), ShouldBeNil)
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	Convey("Given concurrent raters", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStore()
		var wg sync.WaitGroup
		for u := 0; u < 20; u++ {
			wg.Add(1)
			go func(u int) {
				defer wg.Done()
				for g := 0; g < 10; g++ {
					_ = s.PutRating(ctx, rating(fmt.Sprintf("u%d", u), fmt.Sprintf("g%d", g), 3))
				}
			}(u)
		}
		wg.Wait()

		So(s.Count(ctx), ShouldEqual, 200)
		sum, _ := s.Summary(ctx)
		mean, _ := sum.Mean("g0")
		So(mean, ShouldEqual, 3)
	})
}
