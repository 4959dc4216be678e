package config_test

import (
	"context"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/skillforge/skillrec/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DBPath, convey.ShouldEqual, "data/skills.db")
			convey.So(cfg.EmbeddingDims, convey.ShouldEqual, 96)
			convey.So(cfg.MinTaskLength, convey.ShouldEqual, 8)
			convey.So(cfg.CacheTTLMS, convey.ShouldEqual, 0)
		})
	})
}
