package reportio_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/veritas/internal/domain/evaluate"
	"github.com/okian/veritas/internal/domain/record"
	"github.com/okian/veritas/internal/reportio"
	"github.com/okian/veritas/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadRecord(t *testing.T) {
	Convey("Given a JSON document on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "gold.json")
		So(os.WriteFile(path, []byte(`{"person":{"name":"John"},"age":42}`), 0o600), ShouldBeNil)

		Convey("When loading it", func() {
			r, err := reportio.LoadRecord(path)

			Convey("Then the nested record decodes", func() {
				So(err, ShouldBeNil)
				So(record.Flatten(r)["person.name"], ShouldEqual, "John")
			})
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := reportio.LoadRecord("/nonexistent/gold.json")

		Convey("Then the fatal input sentinel surfaces", func() {
			So(err, ShouldWrap, reportio.ErrReadInput)
		})
	})

	Convey("Given malformed JSON", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.json")
		So(os.WriteFile(path, []byte(`{"name":`), 0o600), ShouldBeNil)

		_, err := reportio.LoadRecord(path)

		Convey("Then the fatal input sentinel surfaces", func() {
			So(err, ShouldWrap, reportio.ErrReadInput)
		})
	})
}

func TestLoadValidations(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	ctx := context.Background()
	log := logger.Get()

	Convey("Given a validation file with extra keys", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "validations.json")
		body := `{"validated_errors":[{"field":"name","gold":"John Doe","pred":"Jon Doe","reviewer":"aj"}],"exported_at":"2024-01-01"}`
		So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)

		Convey("When loading it", func() {
			validations := reportio.LoadValidations(ctx, path, log)

			Convey("Then the entries decode and extras are ignored", func() {
				So(validations, ShouldHaveLength, 1)
				So(validations[0].Field, ShouldEqual, "name")
				So(validations[0].Gold, ShouldEqual, "John Doe")
			})
		})
	})

	Convey("Given a missing validation file", t, func() {
		Convey("Then loading degrades to no overrides", func() {
			So(reportio.LoadValidations(ctx, "/nonexistent/v.json", log), ShouldBeEmpty)
		})
	})

	Convey("Given a malformed validation file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.json")
		So(os.WriteFile(path, []byte(`not json`), 0o600), ShouldBeNil)

		Convey("Then loading degrades to no overrides", func() {
			So(reportio.LoadValidations(ctx, path, log), ShouldBeEmpty)
		})
	})

	Convey("Given no path at all", t, func() {
		Convey("Then there are no overrides", func() {
			So(reportio.LoadValidations(ctx, "", log), ShouldBeEmpty)
		})
	})
}

func TestWriteReportAndSummary(t *testing.T) {
	e := evaluate.New()
	report := e.Evaluate(
		record.Record{"name": "John Doe", "phone": "555-1234"},
		record.Record{"name": "Jon Doe"},
		nil,
	)

	Convey("Given an evaluation report", t, func() {
		Convey("When exporting it under a fresh output directory", func() {
			dir := filepath.Join(t.TempDir(), "output")
			path := reportio.ReportPath(dir, "/data/scan_042.json")

			So(reportio.WriteReport(path, report), ShouldBeNil)

			Convey("Then the file lands at the derived location", func() {
				So(path, ShouldEndWith, filepath.Join("output", "scan_042_evaluation_results.json"))
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"final_score"`)
				So(string(data), ShouldContainSubstring, `"missing_fields"`)
			})
		})

		Convey("When printing the console summary", func() {
			var sb strings.Builder
			reportio.WriteSummary(&sb, report)
			out := sb.String()

			Convey("Then the headline figures appear", func() {
				So(out, ShouldContainSubstring, "DOCUMENT EVALUATION SUMMARY")
				So(out, ShouldContainSubstring, "Overall Score:")
				So(out, ShouldContainSubstring, "Field Coverage: 50.0%")
				So(out, ShouldContainSubstring, "Missing Fields: 1")
				So(out, ShouldContainSubstring, "Top 2 Errors:")
				So(out, ShouldContainSubstring, "Field: phone")
			})
		})
	})
}
