package swagger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, http.NoBody))
	return w
}

func TestRegister(t *testing.T) {
	convey.Convey("Given a mux with the docs routes", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		convey.Convey("Then each route answers with its content type", func() {
			cases := map[string]string{
				"/api-docs":     "text/html; charset=utf-8",
				"/openapi.yaml": "application/yaml; charset=utf-8",
				"/openapi.json": "application/json; charset=utf-8",
			}
			for path, contentType := range cases {
				w := serve(mux, http.MethodGet, path)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, contentType)
				convey.So(w.Body.Len(), convey.ShouldBeGreaterThan, 0)
			}
		})

		convey.Convey("Then the docs page points ReDoc at the YAML document", func() {
			body := serve(mux, http.MethodGet, "/api-docs").Body.String()
			convey.So(body, convey.ShouldContainSubstring, "gigmatch API Docs")
			convey.So(body, convey.ShouldContainSubstring, `spec-url="/openapi.yaml"`)
		})

		convey.Convey("Then writes to the docs routes are rejected", func() {
			convey.So(serve(mux, http.MethodPost, "/openapi.yaml").Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
		})
	})

	convey.Convey("Given a nil mux", t, func() {
		convey.So(func() { Register(context.Background(), nil) }, convey.ShouldPanic)
	})
}

func TestJSON(t *testing.T) {
	convey.Convey("Given the embedded OpenAPI document", t, func() {
		out, err := JSON()
		convey.So(err, convey.ShouldBeNil)

		var doc map[string]any
		convey.So(json.Unmarshal(out, &doc), convey.ShouldBeNil)

		convey.Convey("Then it declares every business route", func() {
			convey.So(doc["openapi"], convey.ShouldEqual, "3.0.3")
			paths, ok := doc["paths"].(map[string]any)
			convey.So(ok, convey.ShouldBeTrue)
			for _, p := range []string{
				"/recommend/jobs", "/recommend/gigs", "/feedback", "/trends",
				"/saved", "/saved/{user_id}", "/records/{catalog}/{id}", "/healthz", "/stats",
			} {
				convey.So(paths, convey.ShouldContainKey, p)
			}
		})

		convey.Convey("Then the feedback route documents backpressure", func() {
			feedback := doc["paths"].(map[string]any)["/feedback"].(map[string]any)["post"].(map[string]any)
			convey.So(feedback["responses"], convey.ShouldContainKey, "429")
		})
	})

	convey.Convey("Given a broken document", t, func() {
		saved := OpenAPI
		OpenAPI = []byte("paths: [unclosed")
		defer func() { OpenAPI = saved }()

		_, err := JSON()
		convey.So(errors.Is(err, ErrServe), convey.ShouldBeTrue)
	})
}
