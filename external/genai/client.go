package genai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/dioarsa/football-oracle/internal/domain/prediction"
	"github.com/dioarsa/football-oracle/internal/platform/logging"
	"github.com/dioarsa/football-oracle/internal/platform/resilience"
	"github.com/dioarsa/football-oracle/internal/usecase"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 45 * time.Second

	apiKeyHeader = "x-goog-api-key"
	maxBodyBytes = 4 << 20
)

// errGenAITransient marks failures that should trip the circuit breaker.
var errGenAITransient = crerr.New("generative model transient failure")

// ClientConfig configures the grounded prediction client.
type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

// Client generates match predictions through a generative model with
// web-search grounding enabled.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         cfg.APIKey,
		model:          model,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            now,
	}
}

// Predict produces a grounded prediction for a fixture between the two named
// teams. Both names are required; validation failures never reach the
// network.
func (c *Client) Predict(ctx context.Context, homeTeam, awayTeam string) (prediction.Prediction, error) {
	homeTeam = strings.TrimSpace(homeTeam)
	awayTeam = strings.TrimSpace(awayTeam)
	if homeTeam == "" || awayTeam == "" {
		return prediction.Prediction{}, crerr.Wrap(usecase.ErrInvalidInput, "home and away team names are required")
	}
	if c.apiKey == "" {
		return prediction.Prediction{}, crerr.Wrap(usecase.ErrDependencyUnavailable, "generative model api key is not configured")
	}

	body, err := c.encodeRequest(homeTeam, awayTeam)
	if err != nil {
		return prediction.Prediction{}, crerr.Wrap(err, "encode generate request")
	}

	resp, err := c.executeRequest(ctx, body)
	if err != nil {
		c.logger.WarnContext(ctx, "grounded prediction request failed",
			"homeTeam", homeTeam,
			"awayTeam", awayTeam,
			"error", err,
		)
		return prediction.Prediction{}, translateError(err)
	}

	pred, err := decodePrediction(resp)
	if err != nil {
		c.logger.WarnContext(ctx, "grounded prediction payload unusable",
			"homeTeam", homeTeam,
			"awayTeam", awayTeam,
			"error", err,
		)
		return prediction.Prediction{}, translateError(err)
	}

	c.logger.InfoContext(ctx, "grounded prediction generated",
		"homeTeam", homeTeam,
		"awayTeam", awayTeam,
		"winner", pred.Winner,
		"sources", len(pred.Sources),
	)
	return pred, nil
}

func (c *Client) encodeRequest(homeTeam, awayTeam string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: buildPrompt(homeTeam, awayTeam, c.now())}},
		}},
		Tools:            []tool{{GoogleSearch: &googleSearchTool{}}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	}
	return sonic.Marshal(req)
}

// buildPrompt asks for real-time grounded analysis and pins the model to a
// strict JSON shape so the response parses without post-processing.
func buildPrompt(homeTeam, awayTeam string, today time.Time) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("Today is ")
	buf.WriteString(today.Format("02/01/2006"))
	buf.WriteString(". Search the web for the latest team news, injuries, suspensions and current form for the upcoming football match between ")
	buf.WriteString(homeTeam)
	buf.WriteString(" (home) and ")
	buf.WriteString(awayTeam)
	buf.WriteString(" (away).\n\n")
	buf.WriteString("Based on what you find, predict the outcome. Respond with a single JSON object and nothing else, using exactly these fields:\n")
	buf.WriteString(`{"winner": "<predicted winning team name, or Draw>", "scoreline": "<predicted final score, e.g. 2-1>", "winProbability": {"home": <0-100>, "away": <0-100>, "draw": <0-100>}, "tacticalBreakdown": "<two or three sentences on the tactical picture>"}`)
	buf.WriteString("\nDo not wrap the JSON in markdown fences.")

	return buf.String()
}

func (c *Client) executeRequest(ctx context.Context, body []byte) (generateResponse, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "generative model circuit breaker rejected request", "state", c.breaker.State())
			return generateResponse{}, crerr.Wrap(resilience.ErrCircuitOpen, "generative model circuit open")
		}
	}

	resp, err := c.roundTrip(ctx, body)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errGenAITransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, body []byte) (generateResponse, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return generateResponse{}, crerr.Wrap(err, "build generate request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return generateResponse{}, crerr.Mark(crerr.Wrap(err, "call generative model"), errGenAITransient)
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return generateResponse{}, crerr.Mark(crerr.Wrap(err, "read generate response"), errGenAITransient)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		apiErr := decodeAPIError(raw)
		msg := apiErr.Message
		if msg == "" {
			msg = truncate(string(raw), 512)
		}
		err := fmt.Errorf("generative model status=%d: %s", httpResp.StatusCode, msg)
		if httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= 500 {
			return generateResponse{}, crerr.Mark(err, errGenAITransient)
		}
		return generateResponse{}, err
	}

	var decoded generateResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return generateResponse{}, crerr.Wrap(err, "decode generate response")
	}
	return decoded, nil
}

func decodeAPIError(raw []byte) apiError {
	var envelope apiErrorEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return apiError{}
	}
	return envelope.Error
}

// decodePrediction extracts the model's JSON payload and attaches grounding
// attribution. Citation URIs are deduplicated keeping first occurrence.
func decodePrediction(resp generateResponse) (prediction.Prediction, error) {
	text := resp.firstCandidateText()
	if text == "" {
		return prediction.Prediction{}, crerr.New("generative model returned no candidate text")
	}

	var payload predictionPayload
	if err := sonic.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err != nil {
		return prediction.Prediction{}, crerr.Wrap(err, "parse prediction payload")
	}

	pred := prediction.Prediction{
		Winner:            payload.Winner,
		Scoreline:         payload.Scoreline,
		WinProbability:    payload.WinProbability,
		TacticalBreakdown: payload.TacticalBreakdown,
	}

	if meta := resp.grounding(); meta != nil {
		sources := make([]prediction.Source, 0, len(meta.GroundingChunks))
		for _, chunk := range meta.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			sources = append(sources, prediction.Source{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
		pred.Sources = prediction.DedupeSources(sources)
		if meta.SearchEntryPoint != nil {
			pred.SearchHTML = meta.SearchEntryPoint.RenderedContent
		}
	}

	return pred, nil
}

// translateError maps upstream failures onto the sentinels the HTTP layer
// understands. Rate limiting is recognised by status code or by the literal
// "429" appearing in the upstream message.
func translateError(err error) error {
	if crerr.IsAny(err, usecase.ErrInvalidInput, usecase.ErrRateLimited, usecase.ErrDependencyUnavailable) {
		return err
	}
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		return crerr.Mark(err, usecase.ErrDependencyUnavailable)
	}
	if strings.Contains(err.Error(), "429") {
		return crerr.Wrap(usecase.ErrRateLimited, "prediction provider is rate limited, wait a minute before retrying")
	}
	return crerr.Wrap(err, "failed to generate grounded prediction")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
