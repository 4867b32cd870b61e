package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/veritas/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.MaxReportLimit, convey.ShouldEqual, 100)
				convey.So(cfg.MetadataPrefix, convey.ShouldEqual, "metadata")
				convey.So(cfg.MinorThreshold, convey.ShouldEqual, 0.9)
				convey.So(cfg.SemanticThreshold, convey.ShouldEqual, 0.5)
				convey.So(cfg.NullAliases, convey.ShouldContain, "nan")
				convey.So(cfg.WeightRules, convey.ShouldHaveLength, 3)
				convey.So(cfg.WeightRules[0].Name, convey.ShouldEqual, "identity")
				convey.So(cfg.WeightRules[0].Weight, convey.ShouldEqual, 2.0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("VERITAS_ADDR", ":8080")
			_ = os.Setenv("VERITAS_LOG_LEVEL", "debug")
			_ = os.Setenv("VERITAS_MAX_REPORT_LIMIT", "25")
			_ = os.Setenv("VERITAS_DB_PATH", "/tmp/veritas.db")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MaxReportLimit, convey.ShouldEqual, 25)
				convey.So(cfg.DatabasePath, convey.ShouldEqual, "/tmp/veritas.db")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			dir := t.TempDir()
			path := filepath.Join(dir, "veritas.yaml")
			yaml := `
addr: ":7070"
metadata_prefix: "provenance"
minor_threshold: 0.95
weight_rules:
  - name: siret
    tokens: ["siret"]
    weight: 3.0
`
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("VERITAS_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file layers over the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MetadataPrefix, convey.ShouldEqual, "provenance")
				convey.So(cfg.MinorThreshold, convey.ShouldEqual, 0.95)
				convey.So(cfg.WeightRules, convey.ShouldHaveLength, 1)
				convey.So(cfg.WeightRules[0].Name, convey.ShouldEqual, "siret")
				// Untouched defaults survive.
				convey.So(cfg.SemanticThreshold, convey.ShouldEqual, 0.5)
			})
		})

		convey.Convey("When the config file is missing", func() {
			clearConfigEnvVars()
			_ = os.Setenv("VERITAS_CONFIG", "/nonexistent/veritas.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with a load error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
			})
		})

		convey.Convey("When thresholds are inverted", func() {
			clearConfigEnvVars()
			_ = os.Setenv("VERITAS_MINOR_THRESHOLD", "0.4")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects the config", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"VERITAS_CONFIG",
		"VERITAS_ADDR",
		"VERITAS_LOG_LEVEL",
		"VERITAS_MAX_REPORT_LIMIT",
		"VERITAS_DB_PATH",
		"VERITAS_MINOR_THRESHOLD",
	} {
		_ = os.Unsetenv(key)
	}
}
