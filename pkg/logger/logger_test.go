package logger_test

import (
	"context"
	"testing"

	"github.com/okian/veritas/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		log := logger.Get()
		ctx := context.Background()

		Convey("Then logging at every level does not panic", func() {
			So(func() {
				log.Debug(ctx, "debug message", logger.String("k", "v"))
				log.Info(ctx, "info message", logger.Int("n", 1))
				log.Warn(ctx, "warn message", logger.Float64("f", 1.5))
				log.Error(ctx, "error message", logger.Any("v", struct{}{}))
			}, ShouldNotPanic)
		})

		Convey("Then named loggers derive from the global one", func() {
			named := logger.Named("evaluator")
			So(named, ShouldNotBeNil)
			So(func() { named.Info(ctx, "named message") }, ShouldNotPanic)
		})
	})

	Convey("Given log level strings", t, func() {
		Convey("Then known levels parse", func() {
			for _, lvl := range []string{"debug", "info", "WARN", "warning", "error", ""} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown levels are rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
