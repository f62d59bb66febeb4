package sleeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
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
	defaultBaseURL = "https://api.sleeper.app/v1"
	defaultTimeout = 10 * time.Second

	playersCacheTTL  = time.Hour
	statsCacheTTL    = 10 * time.Minute
	scheduleCacheTTL = 10 * time.Minute
	stateCacheTTL    = 5 * time.Minute

	// The full player dump is ~12MB, so the body cap is generous here.
	maxBodyBytes = 32 << 20
)

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Clock          clockwork.Clock
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	playersCache   *cache.Store
	statsCache     *cache.Store
	scheduleCache  *cache.Store
	stateCache     *cache.Store
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

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		playersCache:   cache.NewStoreWithClock(playersCacheTTL, clock),
		statsCache:     cache.NewStoreWithClock(statsCacheTTL, clock),
		scheduleCache:  cache.NewStoreWithClock(scheduleCacheTTL, clock),
		stateCache:     cache.NewStoreWithClock(stateCacheTTL, clock),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// NFLState returns the current league-wide NFL state (season, week).
func (c *Client) NFLState(ctx context.Context) (State, error) {
	out, err := c.stateCache.GetOrLoad(ctx, "state", func(ctx context.Context) (any, error) {
		var state State
		if err := c.doJSON(ctx, "/state/nfl", &state); err != nil {
			return nil, fmt.Errorf("fetch nfl state: %w", err)
		}
		return state, nil
	})
	if err != nil {
		return State{}, err
	}
	state, ok := out.(State)
	if !ok {
		return State{}, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return state, nil
}

// Players returns the full NFL player dump keyed by Sleeper player id.
func (c *Client) Players(ctx context.Context) (map[string]Player, error) {
	out, err := c.playersCache.GetOrLoad(ctx, "players", func(ctx context.Context) (any, error) {
		players := make(map[string]Player, 8192)
		if err := c.doJSON(ctx, "/players/nfl", &players); err != nil {
			return nil, fmt.Errorf("fetch players: %w", err)
		}
		return players, nil
	})
	if err != nil {
		return nil, err
	}
	players, ok := out.(map[string]Player)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return players, nil
}

// Stats returns the raw weekly stat map for a season week.
func (c *Client) Stats(ctx context.Context, seasonType string, season, week int) (WeekStats, error) {
	seasonType = normalizeSeasonType(seasonType)
	key := fmt.Sprintf("stats-%s-%d-%d", seasonType, season, week)
	out, err := c.statsCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		stats := make(WeekStats, 2048)
		path := fmt.Sprintf("/stats/nfl/%s/%d/%d", seasonType, season, week)
		if err := c.doJSON(ctx, path, &stats); err != nil {
			return nil, fmt.Errorf("fetch weekly stats season=%d week=%d: %w", season, week, err)
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	stats, ok := out.(WeekStats)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return stats, nil
}

// Schedule returns the season schedule, used for kickoff times when the
// scoreboard provider is not configured.
func (c *Client) Schedule(ctx context.Context, seasonType string, season int) ([]ScheduleGame, error) {
	seasonType = normalizeSeasonType(seasonType)
	key := fmt.Sprintf("schedule-%s-%d", seasonType, season)
	out, err := c.scheduleCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		games := make([]ScheduleGame, 0, 300)
		path := fmt.Sprintf("/schedule/nfl/%s/%d", seasonType, season)
		if err := c.doJSON(ctx, path, &games); err != nil {
			return nil, fmt.Errorf("fetch schedule season=%d: %w", season, err)
		}
		return games, nil
	})
	if err != nil {
		return nil, err
	}
	games, ok := out.([]ScheduleGame)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return games, nil
}

func (c *Client) League(ctx context.Context, leagueID string) (League, error) {
	var league League
	if err := c.doJSON(ctx, "/league/"+leagueID, &league); err != nil {
		return League{}, fmt.Errorf("fetch league league_id=%s: %w", leagueID, err)
	}
	return league, nil
}

func (c *Client) Rosters(ctx context.Context, leagueID string) ([]Roster, error) {
	var rosters []Roster
	if err := c.doJSON(ctx, "/league/"+leagueID+"/rosters", &rosters); err != nil {
		return nil, fmt.Errorf("fetch rosters league_id=%s: %w", leagueID, err)
	}
	return rosters, nil
}

func (c *Client) Users(ctx context.Context, leagueID string) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, "/league/"+leagueID+"/users", &users); err != nil {
		return nil, fmt.Errorf("fetch users league_id=%s: %w", leagueID, err)
	}
	return users, nil
}

func (c *Client) Matchups(ctx context.Context, leagueID string, week int) ([]Matchup, error) {
	var matchups []Matchup
	path := "/league/" + leagueID + "/matchups/" + strconv.Itoa(week)
	if err := c.doJSON(ctx, path, &matchups); err != nil {
		return nil, fmt.Errorf("fetch matchups league_id=%s week=%d: %w", leagueID, week, err)
	}
	return matchups, nil
}

func (c *Client) WinnersBracket(ctx context.Context, leagueID string) ([]BracketGame, error) {
	var bracket []BracketGame
	if err := c.doJSON(ctx, "/league/"+leagueID+"/winners_bracket", &bracket); err != nil {
		return nil, fmt.Errorf("fetch winners bracket league_id=%s: %w", leagueID, err)
	}
	return bracket, nil
}

func (c *Client) Drafts(ctx context.Context, leagueID string) ([]Draft, error) {
	var drafts []Draft
	if err := c.doJSON(ctx, "/league/"+leagueID+"/drafts", &drafts); err != nil {
		return nil, fmt.Errorf("fetch drafts league_id=%s: %w", leagueID, err)
	}
	return drafts, nil
}

func (c *Client) DraftPicks(ctx context.Context, draftID string) ([]DraftPick, error) {
	var picks []DraftPick
	if err := c.doJSON(ctx, "/draft/"+draftID+"/picks", &picks); err != nil {
		return nil, fmt.Errorf("fetch draft picks draft_id=%s: %w", draftID, err)
	}
	return picks, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("sleeper is temporarily unavailable: %w", err)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errSleeperTransient) {
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
		return fmt.Errorf("decode sleeper payload: %w", err)
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
			lastErr = fmt.Errorf("%w: send request: %v", errSleeperTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSleeperTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: sleeper status=%d body=%s", errSleeperTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("sleeper status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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
		lastErr = fmt.Errorf("sleeper request failed")
	}
	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func normalizeSeasonType(seasonType string) string {
	switch strings.ToLower(strings.TrimSpace(seasonType)) {
	case "post", "postseason":
		return "post"
	case "pre", "preseason":
		return "pre"
	default:
		return "regular"
	}
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
