package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/dioarsa/football-oracle/internal/domain/fixture"
	"github.com/dioarsa/football-oracle/internal/domain/prediction"
	"github.com/dioarsa/football-oracle/internal/domain/stats"
	"github.com/dioarsa/football-oracle/internal/platform/logging"
	"github.com/dioarsa/football-oracle/internal/usecase"
)

type fakeFixtureGateway struct {
	matches []fixture.Match
}

func (f *fakeFixtureGateway) FetchFixtures(context.Context) []fixture.Match {
	return f.matches
}

type fakeStatsGateway struct {
	stats *stats.MatchStats
	err   error
}

func (f *fakeStatsGateway) FetchMatchStats(context.Context, int64, int64, int64) (*stats.MatchStats, error) {
	return f.stats, f.err
}

type fakePredictor struct {
	pred     prediction.Prediction
	err      error
	lastHome string
	lastAway string
}

func (f *fakePredictor) Predict(_ context.Context, homeTeam, awayTeam string) (prediction.Prediction, error) {
	f.lastHome = homeTeam
	f.lastAway = awayTeam
	return f.pred, f.err
}

func routerFixtures() []fixture.Match {
	kickoff := time.Date(2026, 8, 21, 15, 0, 0, 0, time.UTC)
	return []fixture.Match{
		{
			ID:      1,
			UTCDate: kickoff,
			// Lower-cased on purpose; the DTO mapper normalizes it.
			Status:   "timed",
			Matchday: 2,
			HomeTeam: fixture.Team{ID: 64, Name: "Liverpool FC", ShortName: "Liverpool", TLA: "LIV"},
			AwayTeam: fixture.Team{ID: 65, Name: "Manchester City FC", ShortName: "Man City", TLA: "MCI"},
		},
		{
			ID:       3,
			UTCDate:  kickoff,
			Status:   fixture.StatusInPlay,
			Matchday: 2,
			HomeTeam: fixture.Team{ID: 66, Name: "Manchester United FC", ShortName: "Man United", TLA: "MUN"},
			AwayTeam: fixture.Team{ID: 61, Name: "Chelsea FC", ShortName: "Chelsea", TLA: "CHE"},
		},
	}
}

func newTestRouter(t *testing.T, statsGw usecase.StatsProvider, predictor usecase.Predictor) http.Handler {
	t.Helper()

	fixtures := usecase.NewFixtureService(&fakeFixtureGateway{matches: routerFixtures()}, logging.NewNop())
	statsSvc := usecase.NewStatsService(fixtures, statsGw, logging.NewNop())
	predictionSvc := usecase.NewPredictionService(fixtures, predictor, logging.NewNop())

	handler := NewHandler(fixtures, statsSvc, predictionSvc, nil)
	return NewRouter(handler, nil, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, decoded
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, &fakeStatsGateway{}, &fakePredictor{})

	rec, body := doRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("health data %v", body)
	}
}

func TestRouter_ListFixtures(t *testing.T) {
	router := newTestRouter(t, &fakeStatsGateway{}, &fakePredictor{})

	rec, body := doRequest(t, router, http.MethodGet, "/v1/fixtures", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	items, ok := body["data"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("data %v, want 2 fixtures", body["data"])
	}
	first, _ := items[0].(map[string]any)
	home, _ := first["homeTeam"].(map[string]any)
	if got, _ := home["tla"].(string); got != "LIV" {
		t.Fatalf("first fixture home team %v", home)
	}
	if got, _ := first["status"].(string); got != fixture.StatusTimed {
		t.Fatalf("first fixture status %q, want %q", got, fixture.StatusTimed)
	}
}

func TestRouter_GetMatchStats_SynthesizedFallback(t *testing.T) {
	router := newTestRouter(t, &fakeStatsGateway{err: errors.New("provider down")}, &fakePredictor{})

	rec, body := doRequest(t, router, http.MethodGet, "/v1/fixtures/3/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %v", rec.Code, body)
	}

	data, _ := body["data"].(map[string]any)
	if got, _ := data["source"].(string); got != "synthesized" {
		t.Fatalf("source %v, want synthesized", data["source"])
	}

	form, _ := data["homeForm"].([]any)
	want := []string{"W", "W", "W", "W", "D"}
	if len(form) != len(want) {
		t.Fatalf("home form %v, want %v", form, want)
	}
	for i := range want {
		if got, _ := form[i].(string); got != want[i] {
			t.Fatalf("home form %v, want %v", form, want)
		}
	}
}

func TestRouter_GetMatchStats_Errors(t *testing.T) {
	router := newTestRouter(t, &fakeStatsGateway{}, &fakePredictor{})

	rec, _ := doRequest(t, router, http.MethodGet, "/v1/fixtures/abc/stats", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: status %d, want 400", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/fixtures/99/stats", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: status %d, want 404", rec.Code)
	}
}

func TestRouter_PredictMatch_EmptyBodyUsesFixtureNames(t *testing.T) {
	predictor := &fakePredictor{pred: prediction.Prediction{
		Winner:         "Manchester United FC",
		Scoreline:      "2-1",
		WinProbability: prediction.WinProbability{Home: 55, Away: 25, Draw: 20},
		Sources:        []prediction.Source{{Title: "BBC", URI: "https://bbc.co.uk/1"}},
		SearchHTML:     "<div>chips</div>",
	}}
	router := newTestRouter(t, &fakeStatsGateway{}, predictor)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/fixtures/3/prediction", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %v", rec.Code, body)
	}
	if predictor.lastHome != "Manchester United FC" || predictor.lastAway != "Chelsea FC" {
		t.Fatalf("predictor called with %q vs %q, want fixture names", predictor.lastHome, predictor.lastAway)
	}

	data, _ := body["data"].(map[string]any)
	if got, _ := data["winner"].(string); got != "Manchester United FC" {
		t.Fatalf("winner %v", data["winner"])
	}
	if got, _ := data["searchHtml"].(string); got != "<div>chips</div>" {
		t.Fatalf("searchHtml %v", data["searchHtml"])
	}
	sources, _ := data["sources"].([]any)
	if len(sources) != 1 {
		t.Fatalf("sources %v, want 1", data["sources"])
	}
}

func TestRouter_PredictMatch_CustomNames(t *testing.T) {
	predictor := &fakePredictor{pred: prediction.Prediction{Winner: "Draw"}}
	router := newTestRouter(t, &fakeStatsGateway{}, predictor)

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/fixtures/1/prediction", `{"homeTeam":"Liverpool","awayTeam":"Man City"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if predictor.lastHome != "Liverpool" || predictor.lastAway != "Man City" {
		t.Fatalf("predictor called with %q vs %q", predictor.lastHome, predictor.lastAway)
	}
}

func TestRouter_PredictMatch_RateLimited(t *testing.T) {
	predictor := &fakePredictor{err: fmt.Errorf("%w: wait a minute before retrying", usecase.ErrRateLimited)}
	router := newTestRouter(t, &fakeStatsGateway{}, predictor)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/fixtures/1/prediction", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status %d, want 429", rec.Code)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "RESOURCE_EXHAUSTED" {
		t.Fatalf("error status %v", errorObj["status"])
	}
}

func TestRouter_PredictMatch_MalformedBody(t *testing.T) {
	router := newTestRouter(t, &fakeStatsGateway{}, &fakePredictor{})

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/fixtures/1/prediction", `{"homeTeam":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}
