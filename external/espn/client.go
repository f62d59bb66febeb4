package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/gridironhq/keeper-league/internal/platform/cache"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
	"github.com/gridironhq/keeper-league/internal/platform/resilience"
)

const (
	defaultBaseURL  = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 2 * time.Minute
	maxBodyBytes    = 6 << 20

	// SeasonTypeRegular and SeasonTypePostseason are the seasontype query
	// codes the scoreboard endpoint expects.
	SeasonTypeRegular    = 2
	SeasonTypePostseason = 3
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
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

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
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
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		cache:          cache.NewStoreWithClock(ttl, clock),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// WeekGames fetches the scoreboard for a season week and returns the games
// keyed by team abbreviation, one entry per participating team.
func (c *Client) WeekGames(ctx context.Context, season, week, seasonType int) (map[string]Game, error) {
	if seasonType != SeasonTypePostseason {
		seasonType = SeasonTypeRegular
	}

	cacheKey := fmt.Sprintf("espn:week-%d-%d-%d", season, seasonType, week)
	out, err := c.cache.GetOrLoad(ctx, cacheKey, func(ctx context.Context) (any, error) {
		query := map[string]string{
			"seasontype": strconv.Itoa(seasonType),
			"week":       strconv.Itoa(week),
		}
		var scoreboard scoreboardResponse
		if err := c.doJSON(ctx, "/scoreboard", query, &scoreboard); err != nil {
			return nil, fmt.Errorf("fetch scoreboard season=%d week=%d: %w", season, week, err)
		}
		return ParseGames(scoreboard.Events), nil
	})
	if err != nil {
		return nil, err
	}

	games, ok := out.(map[string]Game)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return games, nil
}

// GameSummary fetches the boxscore player stats for one game, keyed by ESPN
// athlete ID.
func (c *Client) GameSummary(ctx context.Context, gameID string) (map[int64]*PlayerStats, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id must not be empty")
	}

	cacheKey := "espn:summary-" + gameID
	out, err := c.cache.GetOrLoad(ctx, cacheKey, func(ctx context.Context) (any, error) {
		query := map[string]string{"event": gameID}
		var summary summaryResponse
		if err := c.doJSON(ctx, "/summary", query, &summary); err != nil {
			return nil, fmt.Errorf("fetch game summary game_id=%s: %w", gameID, err)
		}
		return ParsePlayerStats(summary.Boxscore), nil
	})
	if err != nil {
		return nil, err
	}

	stats, ok := out.(map[int64]*PlayerStats)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return stats, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("espn is temporarily unavailable: %w", err)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errESPNTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode espn payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: espn status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("espn status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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
		lastErr = fmt.Errorf("espn request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
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
