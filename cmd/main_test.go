package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	app "github.com/okian/gigmatch/internal/app"
	"github.com/okian/gigmatch/internal/config"
	"github.com/okian/gigmatch/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestServiceOptions(t *testing.T) {
	convey.Convey("Given configuration loaded from the environment", t, func() {
		t.Setenv("GIGMATCH_WORKER_COUNT", "2")
		t.Setenv("GIGMATCH_DEFAULT_TOP_N", "3")
		t.Setenv("GIGMATCH_FEEDBACK__ADAPTIVE", "false")

		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the service is built from it", func() {
			svc := app.New(serviceOptions(cfg, logger.NewNop())...)
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer func() { _ = svc.Stop(context.Background()) }()

			stats := svc.GetStats()

			convey.Convey("Then the options are applied", func() {
				convey.So(stats["workerCount"], convey.ShouldEqual, 2)
				convey.So(stats["adaptive"], convey.ShouldEqual, false)
				convey.So(svc.DefaultTopN(), convey.ShouldEqual, 3)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the server mux over a running service", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithWorkerCount(1), app.WithLogger(logger.NewNop()))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		mux := newMux(ctx, svc)

		convey.Convey("Then docs and API routes are served", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/stats", "/trends", "/records/jobs/job-1"} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}

			w := httptest.NewRecorder()
			body := strings.NewReader(`{"user_id":"u1","skills":"python, sql","experience_years":3}`)
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recommend/jobs", body))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"catalog":"jobs"`)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}
