package scoreboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/gridironhq/keeper-league/internal/nfl"
	"github.com/gridironhq/keeper-league/internal/platform/cache"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
	"github.com/gridironhq/keeper-league/internal/platform/resilience"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 2 * time.Minute
	maxBodyBytes    = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`(api_?key|apikey|key|token)=[^&\s"']+`)
var errScoreboardTransient = crerr.New("scoreboard transient failure")

// ClientConfig configures the pluggable scoreboard provider. An empty
// BaseURL leaves the client unconfigured, which is a supported state: every
// lookup then returns an empty map and the rest of the pipeline degrades to
// roster data alone.
type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Path           string
	APIKey         string
	APIKeyParam    string
	APIKeyHeader   string
	ExtraHeaders   map[string]string
	ExtraParams    map[string]string
	Timeout        time.Duration
	MaxRetries     int
	CacheTTL       time.Duration
	Logger         *logging.Logger
	Clock          clockwork.Clock
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	path           string
	apiKey         string
	apiKeyParam    string
	apiKeyHeader   string
	extraHeaders   map[string]string
	extraParams    map[string]string
	maxRetries     int
	logger         *logging.Logger
	cache          *cache.Store
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
		httpClient.Timeout = defaultTimeout
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		path:           strings.TrimSpace(cfg.Path),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		apiKeyParam:    strings.TrimSpace(cfg.APIKeyParam),
		apiKeyHeader:   strings.TrimSpace(cfg.APIKeyHeader),
		extraHeaders:   cfg.ExtraHeaders,
		extraParams:    cfg.ExtraParams,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		cache:          cache.NewStoreWithClock(ttl, clock),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Configured reports whether a scoreboard endpoint was set. Callers treat an
// unconfigured client the same as an empty slate of games.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// WeekGameStatuses returns normalized game metadata for a season week, keyed
// by canonical team code. Both teams of a game share one *GameMeta. The
// result is cached, and upstream failures resolve to an empty map so a
// scoreboard outage never takes down lineup views.
func (c *Client) WeekGameStatuses(ctx context.Context, season, week int, opts map[string]string) map[string]*GameMeta {
	cacheKey := weekCacheKey(season, week, opts)

	if !c.Configured() {
		out, _ := c.cache.GetOrLoad(ctx, cacheKey, func(ctx context.Context) (any, error) {
			return map[string]*GameMeta{}, nil
		})
		statuses, _ := out.(map[string]*GameMeta)
		return statuses
	}

	out, err := c.cache.GetOrLoad(ctx, cacheKey, func(ctx context.Context) (any, error) {
		statuses, fetchErr := c.fetchWeek(ctx, season, week, opts)
		if fetchErr != nil {
			c.logger.WarnContext(ctx, "scoreboard week fetch failed, serving empty statuses",
				"season", season,
				"week", week,
				"error", fetchErr,
			)
			return map[string]*GameMeta{}, nil
		}
		return statuses, nil
	})
	if err != nil {
		return map[string]*GameMeta{}
	}

	statuses, ok := out.(map[string]*GameMeta)
	if !ok {
		return map[string]*GameMeta{}
	}
	return statuses
}

func (c *Client) fetchWeek(ctx context.Context, season, week int, opts map[string]string) (map[string]*GameMeta, error) {
	values := url.Values{}
	for key, value := range c.extraParams {
		values.Set(key, value)
	}
	for key, value := range opts {
		values.Set(key, value)
	}
	values.Set("season", strconv.Itoa(season))
	values.Set("week", strconv.Itoa(week))
	if c.apiKey != "" && c.apiKeyParam != "" {
		values.Set(c.apiKeyParam, c.apiKey)
	}

	fullURL := c.baseURL + c.path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.doRaw(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	games, err := extractGames(raw)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]*GameMeta, len(games)*2)
	for _, game := range games {
		homeTeam, awayTeam := resolveGameTeams(game)
		if homeTeam == "" && awayTeam == "" {
			continue
		}
		meta := buildGameMeta(game, homeTeam, awayTeam)
		if meta.HomeTeam != "" {
			statuses[meta.HomeTeam] = meta
		}
		if meta.AwayTeam != "" {
			statuses[meta.AwayTeam] = meta
		}
	}
	return statuses, nil
}

func (c *Client) doRaw(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "scoreboard circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("scoreboard provider is temporarily unavailable: %w", err)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errScoreboardTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.apiKey != "" && c.apiKeyHeader != "" {
			req.Header.Set(c.apiKeyHeader, c.apiKey)
		}
		for key, value := range c.extraHeaders {
			req.Header.Set(key, value)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errScoreboardTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errScoreboardTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errScoreboardTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "scoreboard request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

// extractGames tolerates several response shapes: a bare array, or an object
// carrying the array under games/events/data/results/scoreboard.games.
func extractGames(raw []byte) ([]map[string]any, error) {
	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode scoreboard payload: %w", err)
	}

	var items []any
	switch typed := decoded.(type) {
	case []any:
		items = typed
	case map[string]any:
		for _, key := range []string{"games", "events", "data", "results", "items"} {
			if found, ok := typed[key].([]any); ok {
				items = found
				break
			}
		}
		if items == nil {
			if nested, ok := typed["scoreboard"].(map[string]any); ok {
				items, _ = nested["games"].([]any)
			}
		}
	}
	if items == nil {
		return nil, fmt.Errorf("scoreboard payload has no recognizable games array")
	}

	games := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if game, ok := item.(map[string]any); ok {
			games = append(games, game)
		}
	}
	return games, nil
}

func resolveGameTeams(game map[string]any) (string, string) {
	home := nfl.NormalizeTeam(stringOf(firstNonNil(
		anyOf(game, "home_team", "homeTeam", "home"),
		fieldOf(anyOf(game, "home_team"), "abbreviation"),
		fieldOf(anyOf(game, "home"), "abbreviation"),
	)))
	away := nfl.NormalizeTeam(stringOf(firstNonNil(
		anyOf(game, "away_team", "awayTeam", "away"),
		fieldOf(anyOf(game, "away_team"), "abbreviation"),
		fieldOf(anyOf(game, "away"), "abbreviation"),
	)))
	if home != "" || away != "" {
		return home, away
	}

	// ESPN-style payloads keep teams under competitions[0].competitors.
	competition := firstCompetition(game)
	for _, raw := range sliceOf(competition, "competitors") {
		comp, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		team := competitorTeam(comp)
		if team == "" {
			continue
		}
		switch strings.ToLower(stringOf(comp["homeAway"])) {
		case "home":
			home = team
		case "away":
			away = team
		default:
			if home == "" {
				home = team
			} else if away == "" {
				away = team
			}
		}
	}
	return home, away
}

// weekCacheKey folds the extra options into the key so two callers with
// different provider options never share an entry. Options are sorted for a
// stable key.
func weekCacheKey(season, week int, opts map[string]string) string {
	if len(opts) == 0 {
		return fmt.Sprintf("scoreboard:%d-%d", season, week)
	}

	keys := make([]string, 0, len(opts))
	for key := range opts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+opts[key])
	}
	return fmt.Sprintf("scoreboard:%d-%d-%s", season, week, strings.Join(parts, "&"))
}

func sanitizeSensitiveText(value, secret string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if secret != "" {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "$1=REDACTED")
}

func redactAPIURL(fullURL string) string {
	return apiKeyParamRegex.ReplaceAllString(fullURL, "$1=REDACTED")
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 300 {
		return text[:300] + "..."
	}
	return text
}

func isRetryableStatus(code int) bool {
	if code == http.StatusTooManyRequests || code == http.StatusRequestTimeout {
		return true
	}
	return code >= 500
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
