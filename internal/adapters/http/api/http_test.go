package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/socio/internal/adapters/http/api"
	"github.com/okian/socio/internal/adapters/render/report"
	service "github.com/okian/socio/internal/app"
	"github.com/okian/socio/internal/domain/model"
)

// mockDeps records the last call and returns canned results.
type mockDeps struct {
	lastSel   model.Selection
	lastState string
	lastLimit int

	mapView service.MapView
	summary model.SummaryRecord
	entries []model.LeaderboardEntry
	err     error
}

func (m *mockDeps) States(context.Context) []string { return []string{"NSW", "VIC"} }

func (m *mockDeps) Suburbs(_ context.Context, state string) ([]string, error) {
	m.lastState = state
	if m.err != nil {
		return nil, m.err
	}
	return []string{"Bondi", "Parramatta"}, nil
}

func (m *mockDeps) Map(_ context.Context, sel model.Selection) (service.MapView, error) {
	m.lastSel = sel
	return m.mapView, m.err
}

func (m *mockDeps) Summary(_ context.Context, sel model.Selection) (model.SummaryRecord, error) {
	m.lastSel = sel
	return m.summary, m.err
}

func (m *mockDeps) Leaderboard(_ context.Context, state string, limit int) ([]model.LeaderboardEntry, error) {
	m.lastState, m.lastLimit = state, limit
	return m.entries, m.err
}

func (m *mockDeps) Chart(_ context.Context, w io.Writer, state string, limit int) error {
	m.lastState, m.lastLimit = state, limit
	if m.err != nil {
		return m.err
	}
	_, err := w.Write([]byte("\x89PNG\r\n\x1a\n"))
	return err
}

func (m *mockDeps) Report(_ context.Context, w io.Writer, sel model.Selection) (report.Info, error) {
	m.lastSel = sel
	if m.err != nil {
		return report.Info{}, m.err
	}
	_, _ = w.Write([]byte("%PDF-1.3"))
	return report.Info{ID: uuid.New(), Filename: report.Filename(sel.Suburbs[0])}, nil
}

type mockStatsProvider struct {
	stats map[string]any
}

func (m *mockStatsProvider) GetStats() map[string]any { return m.stats }

func newRouter(deps *mockDeps) http.Handler {
	r := chi.NewRouter()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]any{"records": 2}}, nil).Register(context.Background(), r)
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		h := newRouter(&mockDeps{})

		Convey("Then health answers with JSON", func() {
			w := get(h, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["status"], ShouldEqual, "ok")
		})

		Convey("And metrics are exposed", func() {
			w := get(h, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "socio_dashboard")
		})

		Convey("And stats come from the provider", func() {
			w := get(h, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["records"], ShouldEqual, 2.0)
		})

		Convey("And unknown routes answer a JSON 404", func() {
			w := get(h, "/nope")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["code"], ShouldEqual, "not_found")
		})

		Convey("And wrong methods are refused", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/states", http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestSelectionHandler(t *testing.T) {
	Convey("Given a selection handler", t, func() {
		deps := &mockDeps{
			mapView: service.MapView{State: "NSW", Points: []model.Point{{Suburb: "Bondi", Ranking: 9}}},
			summary: model.SummaryRecord{Suburb: "Bondi", State: "NSW"},
		}
		h := newRouter(deps)

		Convey("When listing states", func() {
			w := get(h, "/api/states")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["states"], ShouldResemble, []any{"NSW", "VIC"})
		})

		Convey("When listing suburbs of a state", func() {
			w := get(h, "/api/states/NSW/suburbs")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastState, ShouldEqual, "NSW")
			So(decode(w)["suburbs"], ShouldResemble, []any{"Bondi", "Parramatta"})
		})

		Convey("When requesting a map for two suburbs", func() {
			w := get(h, "/api/map?state=NSW&suburb=Bondi&suburb=Parramatta")

			Convey("Then the selection is passed through", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastSel, ShouldResemble, model.Selection{State: "NSW", Suburbs: []string{"Bondi", "Parramatta"}})
				So(decode(w)["points"], ShouldHaveLength, 1)
			})
		})

		Convey("When query values carry surrounding spaces", func() {
			w := get(h, "/api/map?state=NSW&suburb=%20Bondi")

			Convey("Then they are passed through unchanged", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastSel, ShouldResemble, model.Selection{State: "NSW", Suburbs: []string{" Bondi"}})
			})
		})

		Convey("When the map selection matches nothing", func() {
			deps.mapView = service.MapView{NoMatch: true, Warning: "No data available for the selected suburb. Please check the data file."}
			w := get(h, "/api/map?state=NSW&suburb=Atlantis")

			Convey("Then it still answers 200 with the warning", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode(w)
				So(body["no_match"], ShouldEqual, true)
				So(body["warning"], ShouldContainSubstring, "No data available")
			})
		})

		Convey("When the map query has no suburb", func() {
			w := get(h, "/api/map?state=NSW")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				body := decode(w)
				So(body["code"], ShouldEqual, "bad_request")
				So(body["message"], ShouldContainSubstring, "suburbs is required")
			})
		})

		Convey("When the map query has a blank state", func() {
			w := get(h, "/api/map?state=%20&suburb=Bondi")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When requesting a summary", func() {
			w := get(h, "/api/summary?state=NSW&suburb=Bondi")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["suburb"], ShouldEqual, "Bondi")
		})

		Convey("When the summary is for more than one suburb", func() {
			deps.err = service.ErrNotSingleSuburb
			w := get(h, "/api/summary?state=NSW&suburb=Bondi&suburb=Parramatta")
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(decode(w)["code"], ShouldEqual, "not_single_suburb")
		})

		Convey("When the summary matches nothing", func() {
			deps.err = fmt.Errorf("%w: Atlantis, NSW", service.ErrNoMatch)
			w := get(h, "/api/summary?state=NSW&suburb=Atlantis")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["code"], ShouldEqual, "no_match")
		})

		Convey("When downloading a report", func() {
			w := get(h, "/api/report.pdf?state=NSW&suburb=Bondi")

			Convey("Then the PDF is an attachment named after the suburb", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/pdf")
				So(w.Header().Get("Content-Disposition"), ShouldEqual, `attachment; filename="Bondi_Socioeconomic_Report.pdf"`)
				So(w.Header().Get("X-Report-Id"), ShouldNotBeEmpty)
				So(strings.HasPrefix(w.Body.String(), "%PDF"), ShouldBeTrue)
			})
		})

		Convey("When the report fails unexpectedly", func() {
			deps.err = errors.New("disk on fire")
			w := get(h, "/api/report.pdf?state=NSW&suburb=Bondi")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decode(w)["code"], ShouldEqual, "internal_error")
		})
	})
}

func TestLeaderboardHandler(t *testing.T) {
	Convey("Given a leaderboard handler", t, func() {
		deps := &mockDeps{entries: []model.LeaderboardEntry{
			{Position: 2, Suburb: "Parramatta", Ranking: 7},
			{Position: 1, Suburb: "Bondi", Ranking: 9},
		}}
		h := newRouter(deps)

		Convey("When requesting a limited leaderboard", func() {
			w := get(h, "/api/leaderboard?state=NSW&limit=2")

			Convey("Then the entries are returned in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastState, ShouldEqual, "NSW")
				So(deps.lastLimit, ShouldEqual, 2)
				entries := decode(w)["entries"].([]any)
				So(entries, ShouldHaveLength, 2)
				So(entries[1].(map[string]any)["suburb"], ShouldEqual, "Bondi")
			})
		})

		Convey("When no limit is specified", func() {
			w := get(h, "/api/leaderboard?state=NSW")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 0)
		})

		Convey("When the limit is not a number", func() {
			w := get(h, "/api/leaderboard?state=NSW&limit=ten")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit is negative", func() {
			w := get(h, "/api/leaderboard?state=NSW&limit=-3")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["message"], ShouldContainSubstring, "limit must not be negative")
		})

		Convey("When the state is missing", func() {
			w := get(h, "/api/leaderboard")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the cap", func() {
			deps.err = service.ErrInvalidLimit
			w := get(h, "/api/leaderboard?state=NSW&limit=1000")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When drawing the chart", func() {
			w := get(h, "/api/chart.png?state=NSW")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
		})

		Convey("When the chart state is unknown", func() {
			deps.err = service.ErrNoMatch
			w := get(h, "/api/chart.png?state=QLD")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
