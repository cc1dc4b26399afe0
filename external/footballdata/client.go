package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/dioarsa/football-oracle/internal/domain/fixture"
	"github.com/dioarsa/football-oracle/internal/domain/stats"
	"github.com/dioarsa/football-oracle/internal/platform/cache"
	"github.com/dioarsa/football-oracle/internal/platform/logging"
	"github.com/dioarsa/football-oracle/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultBaseURL     = "https://api.football-data.org/v4"
	defaultCompetition = "PL"
	defaultCacheTTL    = time.Hour
	authHeader         = "X-Auth-Token"
	maxBodyBytes       = 4 << 20
	formWindow         = 5
)

var errProviderTransient = crerr.New("football-data transient failure")

var (
	// ErrNotConfigured signals that no provider credential is set; callers
	// must treat this as "no live data exists", not as a failed fetch.
	ErrNotConfigured = crerr.New("football-data token is not configured")

	// ErrStatsUnavailable signals that a live-statistics fetch failed and
	// the caller should fall back to synthesized stats.
	ErrStatsUnavailable = crerr.New("live match statistics unavailable")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Competition    string
	Timeout        time.Duration
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

// Client talks to the football-data.org v4 API. Every response is cached for
// the configured freshness window; every failure on the fixtures path
// degrades to the built-in static list rather than surfacing an error.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	competition    string
	logger         *logging.Logger
	responses      *cache.Store
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	competition := strings.TrimSpace(cfg.Competition)
	if competition == "" {
		competition = defaultCompetition
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		competition:    competition,
		logger:         logger,
		responses:      cache.NewStore(cacheTTL),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            now,
	}
}

// FetchFixtures returns the competition's scheduled matches. It never fails:
// a missing credential, a provider rate limit, any non-success status or any
// transport error all resolve to the static built-in list. A provider payload
// with an empty match array is a valid empty schedule and passes through.
func (c *Client) FetchFixtures(ctx context.Context) []fixture.Match {
	if c.token == "" {
		c.logger.InfoContext(ctx, "no football-data credential configured, serving static fixtures")
		return fixture.StaticMatches(c.now())
	}

	path := "/competitions/" + c.competition + "/matches"
	query := url.Values{"status": {fixture.StatusScheduled}}

	var envelope fixturesEnvelope
	if err := c.getJSON(ctx, path, query, &envelope); err != nil {
		if isRateLimited(err) {
			c.logger.ErrorContext(ctx, "football-data rate limit exceeded, serving static fixtures")
		} else {
			c.logger.ErrorContext(ctx, "fetch fixtures failed, serving static fixtures", "error", err)
		}
		return fixture.StaticMatches(c.now())
	}

	// An empty array is a real answer (off-season); only a payload without
	// the match array counts as malformed.
	if envelope.Matches == nil {
		c.logger.WarnContext(ctx, "fixtures payload has no match array, serving static fixtures")
		return fixture.StaticMatches(c.now())
	}

	return *envelope.Matches
}

// FetchMatchStats loads head-to-head detail plus both teams' last five
// finished matches and derives the statistics block. It returns
// ErrNotConfigured when no credential is set and ErrStatsUnavailable when
// any of the three provider calls fails; both tell the caller to fall back
// to synthesized stats.
func (c *Client) FetchMatchStats(ctx context.Context, matchID, homeID, awayID int64) (*stats.MatchStats, error) {
	if c.token == "" {
		return nil, ErrNotConfigured
	}

	var (
		detail      matchDetailEnvelope
		homeMatches matchesEnvelope
		awayMatches matchesEnvelope
	)

	formQuery := url.Values{
		"status": {fixture.StatusFinished},
		"limit":  {strconv.Itoa(formWindow)},
	}

	group := pool.New().WithErrors().WithContext(ctx)
	group.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, "/matches/"+strconv.FormatInt(matchID, 10), nil, &detail)
	})
	group.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, "/teams/"+strconv.FormatInt(homeID, 10)+"/matches", formQuery, &homeMatches)
	})
	group.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, "/teams/"+strconv.FormatInt(awayID, 10)+"/matches", formQuery, &awayMatches)
	})
	if err := group.Wait(); err != nil {
		c.logger.WarnContext(ctx, "one or more stats calls failed, falling back to synthesized stats",
			"match_id", matchID,
			"error", err,
		)
		return nil, crerr.Mark(err, ErrStatsUnavailable)
	}

	h2h := detail.Head2Head
	if h2h == nil {
		c.logger.WarnContext(ctx, "match detail has no head-to-head block, falling back to synthesized stats", "match_id", matchID)
		return nil, ErrStatsUnavailable
	}

	return &stats.MatchStats{
		HomeForm: deriveForm(homeMatches.Matches, homeID),
		AwayForm: deriveForm(awayMatches.Matches, awayID),
		H2H: stats.HeadToHead{
			HomeWins:   h2h.HomeTeam.Wins,
			AwayWins:   h2h.AwayTeam.Wins,
			Draws:      h2h.Draws,
			LastResult: lastResultDisplay(h2h.Matches),
		},
		WinRate: stats.WinRateFromH2H(h2h.HomeTeam.Wins, h2h.AwayTeam.Wins, h2h.Draws),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.responses.GetOrLoad(ctx, fullURL, func(ctx context.Context) (any, error) {
		return c.executeRequest(ctx, fullURL)
	})
	if err != nil {
		return err
	}

	body, ok := raw.([]byte)
	if !ok {
		return crerr.Newf("unexpected cached payload type %T", raw)
	}

	if err := sonic.Unmarshal(body, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return nil, crerr.Mark(crerr.New("sports-data provider is temporarily unavailable"), errProviderTransient)
		}
	}

	body, err := c.roundTrip(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && stderrors.Is(err, errProviderTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return body, err
}

func (c *Client) roundTrip(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(authHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("send request: %s", sanitizeSensitiveText(err.Error(), c.token)), errProviderTransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errProviderTransient)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, crerr.Mark(fmt.Errorf("provider status=%d: %s", resp.StatusCode, decodeErrorBody(raw)), errProviderTransient)
	case isRetryableStatus(resp.StatusCode):
		return nil, crerr.Mark(fmt.Errorf("provider status=%d: %s", resp.StatusCode, decodeErrorBody(raw)), errProviderTransient)
	default:
		return nil, fmt.Errorf("provider status=%d: %s", resp.StatusCode, decodeErrorBody(raw))
	}
}

// decodeErrorBody best-effort parses a provider error payload; on parse
// failure the raw body is returned truncated.
func decodeErrorBody(raw []byte) string {
	var decoded providerError
	if err := sonic.Unmarshal(raw, &decoded); err == nil && strings.TrimSpace(decoded.Message) != "" {
		return strings.TrimSpace(decoded.Message)
	}

	text := strings.TrimSpace(string(raw))
	if len(text) > 512 {
		text = text[:512] + "...(truncated)"
	}
	return text
}

func isRateLimited(err error) bool {
	return err != nil && strings.Contains(err.Error(), "status=429")
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout || statusCode >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}
