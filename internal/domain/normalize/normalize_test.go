package normalize_test

import (
	"strings"
	"testing"

	"github.com/okian/veritas/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIsNull(t *testing.T) {
	Convey("Given a default normalizer", t, func() {
		n := normalize.New()

		Convey("Then language null is null", func() {
			So(n.IsNull(nil), ShouldBeTrue)
		})

		Convey("Then the null aliases are null regardless of case and spacing", func() {
			for _, s := range []string{"null", "None", " NaN ", "-", "", "  "} {
				So(n.IsNull(s), ShouldBeTrue)
			}
		})

		Convey("Then ordinary values are not null", func() {
			So(n.IsNull("John"), ShouldBeFalse)
			So(n.IsNull(0.0), ShouldBeFalse)
			So(n.IsNull(false), ShouldBeFalse)
			So(n.IsNull("nullify"), ShouldBeFalse)
		})
	})

	Convey("Given a normalizer with custom null aliases", t, func() {
		n := normalize.New(normalize.WithNullAliases([]string{"n/a", ""}))

		Convey("Then only the custom aliases count as null", func() {
			So(n.IsNull("N/A"), ShouldBeTrue)
			So(n.IsNull("none"), ShouldBeFalse)
		})
	})
}

func TestValue(t *testing.T) {
	Convey("Given a default normalizer", t, func() {
		n := normalize.New()

		Convey("Then strings are trimmed and lower-cased", func() {
			So(n.Value("  John DOE "), ShouldEqual, "john doe")
		})

		Convey("Then null aliases map to the empty string", func() {
			So(n.Value(nil), ShouldEqual, "")
			So(n.Value("None"), ShouldEqual, "")
			So(n.Value("-"), ShouldEqual, "")
		})

		Convey("Then non-string scalars are stringified", func() {
			So(n.Value(true), ShouldEqual, "true")
			So(n.Value(2.5), ShouldEqual, "2.5")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a default normalizer", t, func() {
		n := normalize.New()

		Convey("When normalizing a phone field", func() {
			Convey("Then non-digits are stripped", func() {
				So(n.Field("contact.telephone", "+33 (0)1 23-45"), ShouldEqual, "33012345")
				So(n.Field("home_phone", "555-1234"), ShouldEqual, "5551234")
			})
		})

		Convey("When normalizing a count field", func() {
			Convey("Then digit runs are concatenated", func() {
				So(n.Field("nbre_de_salaries", "2,125"), ShouldEqual, "2125")
				So(n.Field("amount_due", "$1 234.56"), ShouldEqual, "123456")
			})

			Convey("And a digitless value falls back to the generic form", func() {
				So(n.Field("count", "unknown"), ShouldEqual, "unknown")
			})
		})

		Convey("When normalizing a date field", func() {
			Convey("Then only digits remain", func() {
				So(n.Field("birth_date", "12/05/1998"), ShouldEqual, "12051998")
			})
		})

		Convey("When the field matches both phone and date tokens", func() {
			Convey("Then the phone rule wins by precedence", func() {
				So(n.Field("tel_update_date", "01-02"), ShouldEqual, "0102")
			})
		})

		Convey("When no rule matches", func() {
			Convey("Then the generic normalization applies", func() {
				So(n.Field("city", "  PARIS "), ShouldEqual, "paris")
			})
		})
	})

	Convey("Given a normalizer with a custom rule list", t, func() {
		n := normalize.New(normalize.WithRules([]normalize.Rule{
			{
				Name:      "upper",
				Tokens:    []string{"code"},
				Transform: strings.ToUpper,
			},
		}))

		Convey("Then the custom rule replaces the defaults", func() {
			So(n.Field("postal_code", "ab12"), ShouldEqual, "AB12")
			So(n.Field("telephone", "555-1234"), ShouldEqual, "555-1234")
		})
	})
}
