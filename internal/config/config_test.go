package config_test

import (
	"errors"
	"testing"

	"github.com/okian/socio/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should match the published workbook", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DatasetPath, convey.ShouldEqual, "Socioeconomic.xlsx")
			convey.So(cfg.RankingColumn, convey.ShouldEqual, "Socio-economic Ranking")
			convey.So(cfg.CoordinateAColumn, convey.ShouldEqual, "Long")
			convey.So(cfg.CoordinateBColumn, convey.ShouldEqual, "Lat")
			convey.So(cfg.LeaderboardSize, convey.ShouldEqual, 10)
			convey.So(cfg.RangeScope, convey.ShouldEqual, config.RangeScopeState)
			convey.So(cfg.MapStyle, convey.ShouldEqual, "carto-positron")
			convey.So(cfg.MapZoom, convey.ShouldEqual, 12)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs that break one rule each", t, func() {
		cases := map[string]func(*config.Config){
			"addr":                  func(c *config.Config) { c.Addr = " " },
			"dataset_path":          func(c *config.Config) { c.DatasetPath = "" },
			"leaderboard_size":      func(c *config.Config) { c.LeaderboardSize = 0 },
			"max_leaderboard_limit": func(c *config.Config) { c.MaxLeaderboardLimit = 5 },
			"range_scope":           func(c *config.Config) { c.RangeScope = "country" },
			"coordinate columns":    func(c *config.Config) { c.CoordinateBColumn = c.CoordinateAColumn },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, name)
		}
	})
}
