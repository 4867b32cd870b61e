package service_test

import (
	"context"
	"testing"

	"github.com/okian/veritas/internal/adapters/repository"
	service "github.com/okian/veritas/internal/app"
	"github.com/okian/veritas/internal/domain/classify"
	"github.com/okian/veritas/internal/domain/evaluate"
	"github.com/okian/veritas/internal/domain/record"
	"github.com/okian/veritas/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func startedService(ctx context.Context, opts ...service.Option) *service.Service {
	_ = logger.Init()
	svc := service.New(append(opts, service.WithLogger(logger.Get()))...)
	So(svc.Start(ctx), ShouldBeNil)
	return svc
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		ctx := context.Background()
		svc := startedService(ctx)
		defer svc.Stop()

		Convey("Then starting twice is a no-op", func() {
			So(svc.Start(ctx), ShouldBeNil)
		})

		Convey("Then stats expose the configuration", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["minorThreshold"], ShouldEqual, 0.9)
			So(stats["reportsStored"], ShouldEqual, 0)
		})
	})
}

func TestServiceEvaluate(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(ctx)
		defer svc.Stop()

		gold := record.Record{"name": "John Doe", "phone": "555-1234"}
		pred := record.Record{"name": "Jon Doe", "phone": "555 1234"}

		Convey("When evaluating a pair", func() {
			eval, err := svc.Evaluate(ctx, gold, pred, nil)

			Convey("Then a stored evaluation with an id comes back", func() {
				So(err, ShouldBeNil)
				So(eval.ID, ShouldNotBeEmpty)
				So(eval.Report, ShouldNotBeNil)
				So(eval.Report.FieldScores, ShouldContainKey, "name")
				So(eval.Report.FieldScores["phone"].Category, ShouldEqual, classify.Perfect)
			})

			Convey("And it can be fetched again", func() {
				got, err := svc.Report(ctx, eval.ID)
				So(err, ShouldBeNil)
				So(got.Report, ShouldResemble, eval.Report)
			})

			Convey("And it shows up in the recent list", func() {
				recent, err := svc.Recent(ctx, 10)
				So(err, ShouldBeNil)
				So(recent, ShouldHaveLength, 1)
				So(recent[0].ID, ShouldEqual, eval.ID)
			})
		})

		Convey("When applying a validation to a stored report", func() {
			eval, err := svc.Evaluate(ctx, gold, pred, nil)
			So(err, ShouldBeNil)
			So(eval.Report.FinalScore, ShouldBeLessThan, 100.0)

			validation := evaluate.Validation{Field: "name", Gold: "John Doe", Pred: "Jon Doe"}
			updated, err := svc.ApplyValidations(ctx, eval.ID, []evaluate.Validation{validation})

			Convey("Then the recomputed report is persisted", func() {
				So(err, ShouldBeNil)
				So(updated.Report.FinalScore, ShouldEqual, 100.0)
				So(updated.Report.AppliedValidations, ShouldHaveLength, 1)

				got, err := svc.Report(ctx, eval.ID)
				So(err, ShouldBeNil)
				So(got.Report.FinalScore, ShouldEqual, 100.0)
			})

			Convey("And applying the same set again changes nothing", func() {
				again, err := svc.ApplyValidations(ctx, eval.ID, []evaluate.Validation{validation})
				So(err, ShouldBeNil)
				So(again.Report, ShouldResemble, updated.Report)
			})
		})

		Convey("When applying validations to an unknown report", func() {
			_, err := svc.ApplyValidations(ctx, "missing", nil)

			Convey("Then the not-found sentinel surfaces", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})
	})
}

func TestServiceCustomScoring(t *testing.T) {
	Convey("Given a service with custom thresholds", t, func() {
		ctx := context.Background()
		svc := startedService(ctx, service.WithThresholds(0.95, 0.2))
		defer svc.Stop()

		Convey("When a near-match is evaluated", func() {
			// similarity 0.875: minor under defaults, semantic here.
			eval, err := svc.Evaluate(ctx,
				record.Record{"city": "John Doe"},
				record.Record{"city": "Jon Doe"},
				nil,
			)

			Convey("Then the custom cutoffs apply", func() {
				So(err, ShouldBeNil)
				So(eval.Report.FieldScores["city"].Category, ShouldEqual, classify.Semantic)
			})
		})
	})
}
