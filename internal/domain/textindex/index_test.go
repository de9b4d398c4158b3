package textindex_test

import (
	"errors"
	"testing"

	"github.com/okian/gigmatch/internal/domain/textindex"
	"github.com/smartystreets/goconvey/convey"
)

func TestFit(t *testing.T) {
	convey.Convey("Given a corpus", t, func() {
		convey.Convey("When it is empty", func() {
			ix, err := textindex.Fit(nil)

			convey.Convey("Then fitting fails with ErrNoDocuments", func() {
				convey.So(ix, convey.ShouldBeNil)
				convey.So(errors.Is(err, textindex.ErrNoDocuments), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When every document is stop words or single characters", func() {
			_, err := textindex.Fit([]string{"the and", "a b c", ""})
			convey.So(errors.Is(err, textindex.ErrEmptyVocabulary), convey.ShouldBeTrue)
		})

		convey.Convey("When documents carry real terms", func() {
			ix, err := textindex.Fit([]string{"Python and SQL", "React, JavaScript", "python django"})

			convey.Convey("Then the vocabulary excludes stop words and is lowercased", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ix.Documents(), convey.ShouldEqual, 3)
				// python, sql, react, javascript, django
				convey.So(ix.VocabularySize(), convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When a custom stop list is supplied", func() {
			ix, err := textindex.Fit([]string{"python and sql"}, textindex.WithStopWords([]string{"SQL"}))

			convey.So(err, convey.ShouldBeNil)
			convey.So(ix.VocabularySize(), convey.ShouldEqual, 2)
		})
	})
}

func TestSimilarity(t *testing.T) {
	convey.Convey("Given a fitted index", t, func() {
		ix, err := textindex.Fit([]string{
			"python machine learning data",
			"react javascript frontend",
			"python django backend",
		})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then identical in-vocabulary texts score 1", func() {
			convey.So(ix.Similarity("python django", "python django"), convey.ShouldAlmostEqual, 1.0, 1e-9)
		})

		convey.Convey("Then an empty text scores 0", func() {
			convey.So(ix.Similarity("", "python"), convey.ShouldEqual, 0)
			convey.So(ix.Similarity("python", "   "), convey.ShouldEqual, 0)
		})

		convey.Convey("Then out-of-vocabulary terms are ignored", func() {
			convey.So(ix.Similarity("rust golang", "rust golang"), convey.ShouldEqual, 0)
			convey.So(ix.Similarity("python rust", "python"), convey.ShouldAlmostEqual, 1.0, 1e-9)
		})

		convey.Convey("Then disjoint texts score 0 and overlapping ones fall in between", func() {
			convey.So(ix.Similarity("react frontend", "django backend"), convey.ShouldEqual, 0)

			s := ix.Similarity("python data", "python django backend")
			convey.So(s, convey.ShouldBeGreaterThan, 0)
			convey.So(s, convey.ShouldBeLessThan, 1)
		})

		convey.Convey("Then similarity is symmetric", func() {
			a, b := "python machine learning", "python backend"
			convey.So(ix.Similarity(a, b), convey.ShouldAlmostEqual, ix.Similarity(b, a), 1e-12)
		})

		convey.Convey("Then rarer shared terms weigh more than common ones", func() {
			// python occurs in two documents, react in one
			common := ix.Similarity("python react", "python")
			rare := ix.Similarity("python react", "react")
			convey.So(rare, convey.ShouldBeGreaterThan, common)
		})
	})
}

func TestTransform(t *testing.T) {
	convey.Convey("Given a fitted index", t, func() {
		ix, _ := textindex.Fit([]string{"go kubernetes", "go docker"})

		convey.Convey("When text is transformed", func() {
			vec := ix.Transform("Go, go, Kubernetes!")

			convey.Convey("Then the vector is L2-normalized", func() {
				var sq float64
				for _, w := range vec {
					sq += w * w
				}
				convey.So(sq, convey.ShouldAlmostEqual, 1.0, 1e-9)
				convey.So(vec, convey.ShouldContainKey, "go")
				convey.So(vec, convey.ShouldContainKey, "kubernetes")
			})
		})

		convey.Convey("When nothing is in the vocabulary", func() {
			convey.So(ix.Transform("terraform"), convey.ShouldBeEmpty)
			convey.So(textindex.Cosine(ix.Transform("terraform"), ix.Transform("go")), convey.ShouldEqual, 0)
		})
	})
}

func TestTokenization(t *testing.T) {
	convey.Convey("Given an index fitted on punctuated skill text", t, func() {
		ix, err := textindex.Fit([]string{
			"scikit-learn, node.js and C++ (senior)",
			"golang microservices",
		}, textindex.WithStopWords([]string{"and"}))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then tokens split on non-word runes like a \\w\\w+ pattern", func() {
			vec := ix.Transform("scikit-learn node.js C++ senior golang and")
			for _, term := range []string{"scikit", "learn", "node", "js", "senior", "golang"} {
				convey.So(vec, convey.ShouldContainKey, term)
			}
			convey.So(vec, convey.ShouldNotContainKey, "scikit-learn")
			convey.So(vec, convey.ShouldNotContainKey, "c")
			convey.So(vec, convey.ShouldNotContainKey, "and")
		})

		convey.Convey("Then hyphenated and spaced spellings match exactly", func() {
			convey.So(ix.Similarity("scikit-learn", "scikit learn"), convey.ShouldAlmostEqual, 1.0, 1e-9)
		})
	})
}
