package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	service "github.com/okian/socio/internal/app"
	"github.com/okian/socio/internal/domain/filter"
	"github.com/okian/socio/internal/domain/model"
	"github.com/okian/socio/internal/domain/summary"
	. "github.com/smartystreets/goconvey/convey"
)

func nswDataset() *model.Dataset {
	return model.NewDataset("memory", "Sheet1", []model.SuburbRecord{
		{Row: 2, State: "NSW", Suburb: "Parramatta", Ranking: 7, CoordinateA: -33.8, CoordinateB: 151.0},
		{Row: 3, State: "NSW", Suburb: "Bondi", Ranking: 9, CoordinateA: -33.9, CoordinateB: 151.3},
		{Row: 4, State: "VIC", Suburb: "Carlton", Ranking: 3, CoordinateA: -37.8, CoordinateB: 144.97},
		{Row: 5, State: "NSW", Suburb: "Bondi", Ranking: 2, CoordinateA: -33.91, CoordinateB: 151.27},
	}, 0)
}

func newService(opts ...service.Option) *service.Service {
	svc, err := service.New(nswDataset(), opts...)
	So(err, ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given no dataset", t, func() {
		svc, err := service.New(nil)

		Convey("Then construction fails", func() {
			So(svc, ShouldBeNil)
			So(errors.Is(err, service.ErrNoDataset), ShouldBeTrue)
		})
	})

	Convey("Given a dataset and custom options", t, func() {
		svc := newService(
			service.WithLeaderboardSize(3),
			service.WithMaxLimit(2),
			service.WithRangeScope("nowhere"),
		)

		Convey("Then invalid options fall back to sane values", func() {
			stats := svc.GetStats()
			So(stats["leaderboardSize"], ShouldEqual, 3)
			So(stats["maxLimit"], ShouldEqual, 3)
			So(stats["rangeScope"], ShouldEqual, service.ScopeState)
			So(stats["records"], ShouldEqual, 4)
			So(stats["states"], ShouldEqual, 2)
		})
	})
}

func TestService_Options(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := newService()
		ctx := context.Background()

		Convey("States are sorted and distinct", func() {
			So(svc.States(ctx), ShouldResemble, []string{"NSW", "VIC"})
		})

		Convey("Suburbs are listed per state", func() {
			subs, err := svc.Suburbs(ctx, "NSW")
			So(err, ShouldBeNil)
			So(subs, ShouldResemble, []string{"Bondi", "Parramatta"})
		})

		Convey("An unknown state has no suburbs", func() {
			subs, err := svc.Suburbs(ctx, "nsw")
			So(err, ShouldBeNil)
			So(subs, ShouldBeEmpty)
		})

		Convey("A blank state is rejected", func() {
			_, err := svc.Suburbs(ctx, " ")
			So(errors.Is(err, service.ErrInvalidSelection), ShouldBeTrue)
		})
	})
}

func TestService_Map(t *testing.T) {
	Convey("Given a service scaled per state", t, func() {
		svc := newService(service.WithMapStyle("open-street-map", 10))
		ctx := context.Background()

		Convey("When selecting Parramatta and Bondi", func() {
			view, err := svc.Map(ctx, model.Selection{State: "NSW", Suburbs: []string{"Bondi", "Parramatta"}})

			Convey("Then every matching row is plotted in dataset order", func() {
				So(err, ShouldBeNil)
				So(view.NoMatch, ShouldBeFalse)
				So(view.Points, ShouldHaveLength, 3)
				So(view.Points[0].Suburb, ShouldEqual, "Parramatta")
				So(view.Points[1].Suburb, ShouldEqual, "Bondi")
				So(view.Points[0].Latitude, ShouldEqual, -33.8)
				So(view.Points[0].Longitude, ShouldEqual, 151.0)
			})

			Convey("And the range covers the NSW population", func() {
				So(view.Range, ShouldResemble, model.RankingRange{Min: 2, Max: 9})
				So(view.Points[1].Scale, ShouldEqual, 1.0)
				So(view.Points[2].Scale, ShouldEqual, 0.0)
			})

			Convey("And the map is centred on the first match", func() {
				So(view.Center, ShouldNotBeNil)
				So(view.Center.Latitude, ShouldEqual, -33.8)
				So(view.Center.Longitude, ShouldEqual, 151.0)
				So(view.Style, ShouldEqual, "open-street-map")
				So(view.Zoom, ShouldEqual, 10)
			})
		})

		Convey("When the selection matches nothing", func() {
			view, err := svc.Map(ctx, model.Selection{State: "NSW", Suburbs: []string{"Atlantis"}})

			Convey("Then the view carries the warning and no points", func() {
				So(err, ShouldBeNil)
				So(view.NoMatch, ShouldBeTrue)
				So(view.Warning, ShouldEqual, filter.NoMatchWarning)
				So(view.Points, ShouldBeEmpty)
				So(view.Center, ShouldBeNil)
			})
		})

		Convey("When the selection is incomplete", func() {
			_, err1 := svc.Map(ctx, model.Selection{State: "", Suburbs: []string{"Bondi"}})
			_, err2 := svc.Map(ctx, model.Selection{State: "NSW"})

			Convey("Then it is rejected", func() {
				So(errors.Is(err1, service.ErrInvalidSelection), ShouldBeTrue)
				So(errors.Is(err2, service.ErrInvalidSelection), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service scaled over the whole dataset", t, func() {
		svc := newService(service.WithRangeScope(service.ScopeDataset))

		view, err := svc.Map(context.Background(), model.Selection{State: "VIC", Suburbs: []string{"Carlton"}})

		So(err, ShouldBeNil)
		So(view.Scope, ShouldEqual, service.ScopeDataset)
		So(view.Range, ShouldResemble, model.RankingRange{Min: 2, Max: 9})
	})
}

func TestService_Summary(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := newService()
		ctx := context.Background()

		Convey("When summarising a duplicated suburb", func() {
			rec, err := svc.Summary(ctx, model.Selection{State: "NSW", Suburbs: []string{"Bondi"}})

			Convey("Then the first row in dataset order wins", func() {
				So(err, ShouldBeNil)
				v, _ := rec.Get(summary.KeyRanking)
				So(v, ShouldEqual, 9.0)
			})
		})

		Convey("When more than one suburb is selected", func() {
			_, err := svc.Summary(ctx, model.Selection{State: "NSW", Suburbs: []string{"Bondi", "Parramatta"}})
			So(errors.Is(err, service.ErrNotSingleSuburb), ShouldBeTrue)
		})

		Convey("When the suburb is repeated", func() {
			_, err := svc.Summary(ctx, model.Selection{State: "NSW", Suburbs: []string{"Bondi", "Bondi"}})
			So(err, ShouldBeNil)
		})

		Convey("When nothing matches", func() {
			_, err := svc.Summary(ctx, model.Selection{State: "VIC", Suburbs: []string{"Bondi"}})
			So(errors.Is(err, service.ErrNoMatch), ShouldBeTrue)
		})
	})
}

func TestService_Leaderboard(t *testing.T) {
	Convey("Given a service with a small default leaderboard", t, func() {
		svc := newService(service.WithLeaderboardSize(2), service.WithMaxLimit(5))
		ctx := context.Background()

		Convey("The default size is used for a zero limit", func() {
			entries, err := svc.Leaderboard(ctx, "NSW", 0)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Suburb, ShouldEqual, "Parramatta")
			So(entries[1].Suburb, ShouldEqual, "Bondi")
			So(entries[1].Position, ShouldEqual, 1)
		})

		Convey("Limits outside the cap are rejected", func() {
			_, err := svc.Leaderboard(ctx, "NSW", 6)
			So(errors.Is(err, service.ErrInvalidLimit), ShouldBeTrue)
			_, err = svc.Leaderboard(ctx, "NSW", -1)
			So(errors.Is(err, service.ErrInvalidLimit), ShouldBeTrue)
		})

		Convey("An unknown state has no leaderboard", func() {
			_, err := svc.Leaderboard(ctx, "QLD", 0)
			So(errors.Is(err, service.ErrNoMatch), ShouldBeTrue)
		})
	})
}

func TestService_Artifacts(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := newService(service.WithReportTitle("Suburb Profile"))
		ctx := context.Background()

		Convey("When drawing the NSW chart", func() {
			var buf bytes.Buffer
			err := svc.Chart(ctx, &buf, "NSW", 0)

			Convey("Then a PNG is produced", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), ShouldBeTrue)
			})
		})

		Convey("When exporting the Parramatta report", func() {
			var buf bytes.Buffer
			info, err := svc.Report(ctx, &buf, model.Selection{State: "NSW", Suburbs: []string{"Parramatta"}})

			Convey("Then a PDF is produced with the expected name", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), ShouldBeTrue)
				So(info.Filename, ShouldEqual, "Parramatta_Socioeconomic_Report.pdf")
				So(info.Title, ShouldEqual, "Suburb Profile - Parramatta")
			})
		})

		Convey("When exporting a report for two suburbs", func() {
			var buf bytes.Buffer
			_, err := svc.Report(ctx, &buf, model.Selection{State: "NSW", Suburbs: []string{"Parramatta", "Bondi"}})

			Convey("Then nothing is written", func() {
				So(errors.Is(err, service.ErrNotSingleSuburb), ShouldBeTrue)
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}
