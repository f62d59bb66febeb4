package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/valyala/bytebufferpool"

	"github.com/gridironhq/keeper-league/internal/domain/keeper"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
	"github.com/gridironhq/keeper-league/internal/usecase"
)

const (
	liveWriteTimeout = 10 * time.Second
	livePongTimeout  = 60 * time.Second
	livePingInterval = 30 * time.Second
	liveSendBuffer   = 64
	liveMaxReadBytes = 512
)

type liveEvent struct {
	Type   string `json:"type"`
	Data   any    `json:"data"`
	SentAt string `json:"sent_at"`
}

// LiveHub fans live matchup and keeper updates out to connected websocket
// clients. Clients are read-only; anything they send beyond control frames
// is discarded.
type LiveHub struct {
	logger   *logging.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*liveClient]struct{}
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewLiveHub(allowedOrigins []string, logger *logging.Logger) *LiveHub {
	if logger == nil {
		logger = logging.Default()
	}

	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return &LiveHub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" || allowAll {
					return true
				}
				_, ok := allowMap[origin]
				return ok
			},
		},
		clients: make(map[*liveClient]struct{}),
	}
}

func (hub *LiveHub) ClientCount() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

// Broadcast encodes one event and queues it on every connected client.
// Clients whose send buffer is full are dropped rather than allowed to
// stall the rest.
func (hub *LiveHub) Broadcast(event string, data any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	payload := liveEvent{
		Type:   event,
		Data:   data,
		SentAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		hub.logger.Warn("encode live event failed", "event", event, "error", err)
		return
	}
	message := append([]byte(nil), bytes.TrimRight(buf.Bytes(), "\n")...)

	hub.mu.Lock()
	defer hub.mu.Unlock()
	for client := range hub.clients {
		select {
		case client.send <- message:
		default:
			delete(hub.clients, client)
			close(client.send)
		}
	}
}

// PublishKeeperUpdate lets the keeper service push saved selections to
// live viewers.
func (hub *LiveHub) PublishKeeperUpdate(year, rosterID int, items []keeper.Keeper) {
	hub.Broadcast("keepers_updated", map[string]any{
		"year":      year,
		"roster_id": rosterID,
		"keepers":   keepersToDTO(items),
	})
}

func (hub *LiveHub) serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade websocket: %w", err)
	}

	client := &liveClient{
		conn: conn,
		send: make(chan []byte, liveSendBuffer),
	}

	hub.mu.Lock()
	hub.clients[client] = struct{}{}
	hub.mu.Unlock()

	go hub.writePump(client)
	go hub.readPump(client)
	return nil
}

func (hub *LiveHub) unregister(client *liveClient) {
	hub.mu.Lock()
	if _, ok := hub.clients[client]; ok {
		delete(hub.clients, client)
		close(client.send)
	}
	hub.mu.Unlock()
	_ = client.conn.Close()
}

func (hub *LiveHub) writePump(client *liveClient) {
	ticker := time.NewTicker(livePingInterval)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (hub *LiveHub) readPump(client *liveClient) {
	defer hub.unregister(client)

	client.conn.SetReadLimit(liveMaxReadBytes)
	_ = client.conn.SetReadDeadline(time.Now().Add(livePongTimeout))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(livePongTimeout))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) LiveMatchupsSocket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LiveMatchupsSocket")
	defer span.End()

	if h.liveHub == nil {
		writeError(ctx, w, fmt.Errorf("%w: live updates are not configured", usecase.ErrDependencyUnavailable))
		return
	}

	if err := h.liveHub.serve(w, r); err != nil {
		// Upgrade failures already wrote a response through the upgrader.
		h.logger.WarnContext(ctx, "live socket upgrade failed", "error", err)
	}
}

// LiveRefresher periodically rebuilds the active week's enriched matchups
// and broadcasts them while anyone is watching.
type LiveRefresher struct {
	hub            *LiveHub
	matchupService *usecase.MatchupService
	seasonService  *usecase.SeasonService
	managerService *usecase.ManagerService
	interval       time.Duration
	clock          clockwork.Clock
	logger         *logging.Logger
}

func NewLiveRefresher(
	hub *LiveHub,
	matchupService *usecase.MatchupService,
	seasonService *usecase.SeasonService,
	managerService *usecase.ManagerService,
	interval time.Duration,
	clock clockwork.Clock,
	logger *logging.Logger,
) *LiveRefresher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LiveRefresher{
		hub:            hub,
		matchupService: matchupService,
		seasonService:  seasonService,
		managerService: managerService,
		interval:       interval,
		clock:          clock,
		logger:         logger,
	}
}

func (r *LiveRefresher) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.refresh(ctx)
		}
	}
}

func (r *LiveRefresher) refresh(ctx context.Context) {
	if r.hub.ClientCount() == 0 {
		return
	}

	year := leagueYear(r.clock.Now())
	settings, err := r.seasonService.LeagueSettings(ctx, year)
	if err != nil {
		r.logger.WarnContext(ctx, "live refresh: league settings unavailable", "year", year, "error", err)
		return
	}
	leagueID := strings.TrimSpace(settings.LeagueID)
	if leagueID == "" {
		return
	}

	managers, err := r.managerService.ListManagers(ctx, true)
	if err != nil {
		r.logger.WarnContext(ctx, "live refresh: list managers failed", "error", err)
		return
	}

	lineups, err := r.matchupService.WeeklyMatchupsWithLineups(ctx, leagueID, 0, managers, year)
	if err != nil {
		r.logger.WarnContext(ctx, "live refresh: weekly matchups failed", "year", year, "league_id", leagueID, "error", err)
		return
	}

	r.hub.Broadcast("live_matchups", lineups)
}

// leagueYear maps a wall-clock date to its NFL season year: January and
// February games still belong to the prior season.
func leagueYear(now time.Time) int {
	year := now.Year()
	if now.Month() < time.March {
		year--
	}
	return year
}
