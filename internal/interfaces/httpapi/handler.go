package httpapi

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/dioarsa/football-oracle/internal/domain/fixture"
	"github.com/dioarsa/football-oracle/internal/domain/prediction"
	"github.com/dioarsa/football-oracle/internal/domain/stats"
	"github.com/dioarsa/football-oracle/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	fixtureService    *usecase.FixtureService
	statsService      *usecase.StatsService
	predictionService *usecase.PredictionService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	fixtureService *usecase.FixtureService,
	statsService *usecase.StatsService,
	predictionService *usecase.PredictionService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		fixtureService:    fixtureService,
		statsService:      statsService,
		predictionService: predictionService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	matches := h.fixtureService.ListUpcoming(ctx)

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchStats")
	defer span.End()

	matchID, err := parseMatchID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.statsService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(result))
}

func (h *Handler) PredictMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictMatch")
	defer span.End()

	matchID, err := parseMatchID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req, err := h.decodePredictionRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req.MatchID = matchID

	pred, err := h.predictionService.Predict(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "predict match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(pred))
}

// decodePredictionRequest reads the optional request body. An empty body is
// valid and means the fixture's own team names are used.
func (h *Handler) decodePredictionRequest(r *http.Request) (usecase.PredictionRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return usecase.PredictionRequest{}, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return usecase.PredictionRequest{}, nil
	}

	var dto predictionRequestDTO
	if err := sonic.Unmarshal(raw, &dto); err != nil {
		return usecase.PredictionRequest{}, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.Struct(dto); err != nil {
		return usecase.PredictionRequest{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return usecase.PredictionRequest{
		HomeTeam: dto.HomeTeam,
		AwayTeam: dto.AwayTeam,
	}, nil
}

func parseMatchID(r *http.Request) (int64, error) {
	raw := r.PathValue("matchID")
	matchID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || matchID <= 0 {
		return 0, fmt.Errorf("%w: match id %q must be a positive integer", usecase.ErrInvalidInput, raw)
	}
	return matchID, nil
}

type predictionRequestDTO struct {
	HomeTeam string `json:"homeTeam" validate:"omitempty,max=120"`
	AwayTeam string `json:"awayTeam" validate:"omitempty,max=120"`
}

type teamDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type scoreDTO struct {
	FullTime fullTimeDTO `json:"fullTime"`
}

type fullTimeDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type matchDTO struct {
	ID       int64     `json:"id"`
	UTCDate  time.Time `json:"utcDate"`
	Status   string    `json:"status"`
	Matchday int       `json:"matchday"`
	HomeTeam teamDTO   `json:"homeTeam"`
	AwayTeam teamDTO   `json:"awayTeam"`
	Score    *scoreDTO `json:"score,omitempty"`
}

type headToHeadDTO struct {
	HomeWins   int    `json:"homeWins"`
	AwayWins   int    `json:"awayWins"`
	Draws      int    `json:"draws"`
	LastResult string `json:"lastResult"`
}

type winRateDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type matchStatsDTO struct {
	MatchID  int64         `json:"matchId"`
	Source   string        `json:"source"`
	HomeForm []string      `json:"homeForm"`
	AwayForm []string      `json:"awayForm"`
	H2H      headToHeadDTO `json:"h2h"`
	WinRate  winRateDTO    `json:"winRate"`
}

type sourceDTO struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type winProbabilityDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
	Draw int `json:"draw"`
}

type predictionDTO struct {
	Winner            string            `json:"winner"`
	Scoreline         string            `json:"scoreline"`
	WinProbability    winProbabilityDTO `json:"winProbability"`
	TacticalBreakdown string            `json:"tacticalBreakdown"`
	Sources           []sourceDTO       `json:"sources,omitempty"`
	SearchHTML        string            `json:"searchHtml,omitempty"`
}

func teamToDTO(t fixture.Team) teamDTO {
	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		ShortName: t.ShortName,
		TLA:       t.TLA,
		Crest:     t.Crest,
	}
}

func matchToDTO(m fixture.Match) matchDTO {
	dto := matchDTO{
		ID:       m.ID,
		UTCDate:  m.UTCDate,
		Status:   fixture.NormalizeStatus(m.Status),
		Matchday: m.Matchday,
		HomeTeam: teamToDTO(m.HomeTeam),
		AwayTeam: teamToDTO(m.AwayTeam),
	}
	if m.Score != nil {
		dto.Score = &scoreDTO{
			FullTime: fullTimeDTO{
				Home: m.Score.FullTime.Home,
				Away: m.Score.FullTime.Away,
			},
		}
	}
	return dto
}

func statsToDTO(result usecase.StatsResult) matchStatsDTO {
	return matchStatsDTO{
		MatchID:  result.Match.ID,
		Source:   result.Source,
		HomeForm: outcomesToStrings(result.Stats.HomeForm),
		AwayForm: outcomesToStrings(result.Stats.AwayForm),
		H2H: headToHeadDTO{
			HomeWins:   result.Stats.H2H.HomeWins,
			AwayWins:   result.Stats.H2H.AwayWins,
			Draws:      result.Stats.H2H.Draws,
			LastResult: result.Stats.H2H.LastResult,
		},
		WinRate: winRateDTO{
			Home: result.Stats.WinRate.Home,
			Away: result.Stats.WinRate.Away,
		},
	}
}

func outcomesToStrings(outcomes []stats.Outcome) []string {
	items := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		items = append(items, string(o))
	}
	return items
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	dto := predictionDTO{
		Winner:    p.Winner,
		Scoreline: p.Scoreline,
		WinProbability: winProbabilityDTO{
			Home: p.WinProbability.Home,
			Away: p.WinProbability.Away,
			Draw: p.WinProbability.Draw,
		},
		TacticalBreakdown: p.TacticalBreakdown,
		SearchHTML:        p.SearchHTML,
	}
	if len(p.Sources) > 0 {
		dto.Sources = make([]sourceDTO, 0, len(p.Sources))
		for _, s := range p.Sources {
			dto.Sources = append(dto.Sources, sourceDTO{Title: s.Title, URI: s.URI})
		}
	}
	return dto
}
