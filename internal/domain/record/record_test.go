package record_test

import (
	"testing"

	"github.com/okian/veritas/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFlatten(t *testing.T) {
	Convey("Given a nested record", t, func() {
		r := record.Record{
			"person": map[string]any{
				"name": "John",
				"address": map[string]any{
					"city": "Paris",
				},
			},
			"age": 42.0,
		}

		Convey("When flattening it", func() {
			flat := record.Flatten(r)

			Convey("Then every scalar leaf binds its dot-joined path", func() {
				So(flat, ShouldHaveLength, 3)
				So(flat["person.name"], ShouldEqual, "John")
				So(flat["person.address.city"], ShouldEqual, "Paris")
				So(flat["age"], ShouldEqual, 42.0)
			})
		})
	})

	Convey("Given a record with an empty nested record", t, func() {
		r := record.Record{
			"name":  "John",
			"notes": map[string]any{},
		}

		Convey("When flattening it", func() {
			flat := record.Flatten(r)

			Convey("Then the empty record's key vanishes entirely", func() {
				So(flat, ShouldHaveLength, 1)
				So(flat, ShouldNotContainKey, "notes")
			})
		})
	})

	Convey("Given a record with null and boolean leaves", t, func() {
		r := record.Record{
			"active": true,
			"phone":  nil,
		}

		Convey("When flattening it", func() {
			flat := record.Flatten(r)

			Convey("Then the leaves survive untouched", func() {
				So(flat["active"], ShouldEqual, true)
				So(flat["phone"], ShouldBeNil)
				So(flat, ShouldContainKey, "phone")
			})
		})
	})
}

func TestFlatMapNormalizeKeys(t *testing.T) {
	Convey("Given a flat map with spaces in field paths", t, func() {
		flat := record.FlatMap{
			"company name":        "ACME",
			"person.first name":   "John",
			"person.phone_number": "555",
		}

		Convey("When normalizing keys", func() {
			out := flat.NormalizeKeys()

			Convey("Then spaces become underscores and other keys stay", func() {
				So(out, ShouldContainKey, "company_name")
				So(out, ShouldContainKey, "person.first_name")
				So(out, ShouldContainKey, "person.phone_number")
				So(out, ShouldNotContainKey, "company name")
			})
		})
	})
}

func TestFlatMapWithoutPrefix(t *testing.T) {
	Convey("Given a flat map with metadata paths", t, func() {
		flat := record.FlatMap{
			"metadata.source": "scanner-3",
			"metadata.page":   1.0,
			"name":            "John",
		}

		Convey("When filtering out the metadata prefix", func() {
			out := flat.WithoutPrefix("metadata")

			Convey("Then only content paths remain", func() {
				So(out, ShouldHaveLength, 1)
				So(out, ShouldContainKey, "name")
			})
		})
	})
}

func TestFlatMapPaths(t *testing.T) {
	Convey("Given a flat map", t, func() {
		flat := record.FlatMap{"b": 1.0, "a": 2.0, "c": 3.0}

		Convey("When listing paths", func() {
			Convey("Then they come back sorted", func() {
				So(flat.Paths(), ShouldResemble, []string{"a", "b", "c"})
			})
		})
	})
}
