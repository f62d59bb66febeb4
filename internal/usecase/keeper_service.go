package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gridironhq/keeper-league/external/sleeper"
	"github.com/gridironhq/keeper-league/internal/domain/keeper"
	"github.com/gridironhq/keeper-league/internal/domain/season"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
)

type keeperLeagueSource interface {
	Rosters(ctx context.Context, leagueID string) ([]sleeper.Roster, error)
	Players(ctx context.Context) (map[string]sleeper.Player, error)
	Drafts(ctx context.Context, leagueID string) ([]sleeper.Draft, error)
	DraftPicks(ctx context.Context, draftID string) ([]sleeper.DraftPick, error)
}

// keeperUpdatePublisher pushes saved keeper selections to connected
// clients. A nil publisher disables the push.
type keeperUpdatePublisher interface {
	PublishKeeperUpdate(year, rosterID int, items []keeper.Keeper)
}

type KeeperInput struct {
	PlayerID          string `validate:"required"`
	PlayerName        string
	Position          string
	Team              string
	TradeFromRosterID *int
	TradeAmount       *float64
	TradeNote         string
}

// KeeperBoard is the year's full keeper sheet plus its lock state.
type KeeperBoard struct {
	Year      int             `json:"year"`
	Keepers   []keeper.Keeper `json:"keepers"`
	Locked    bool            `json:"locked"`
	LockedAt  *time.Time      `json:"locked_at,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// RosterPlayer is one player on a final roster, flagged when he was taken
// in that season's draft (drafted players cost their draft slot to keep).
type RosterPlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Team     string `json:"team,omitempty"`
	Drafted  bool   `json:"drafted"`
}

type FinalRoster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id,omitempty"`
	Players  []RosterPlayer `json:"players"`
}

// KeeperService owns keeper selections, the per-season trade lock, and the
// final-roster view managers pick keepers from.
type KeeperService struct {
	repo         keeper.Repository
	settingsRepo season.SettingsRepository
	source       keeperLeagueSource
	publisher    keeperUpdatePublisher
	logger       *logging.Logger
}

func NewKeeperService(
	repo keeper.Repository,
	settingsRepo season.SettingsRepository,
	source keeperLeagueSource,
	publisher keeperUpdatePublisher,
	logger *logging.Logger,
) *KeeperService {
	if logger == nil {
		logger = logging.Default()
	}

	return &KeeperService{
		repo:         repo,
		settingsRepo: settingsRepo,
		source:       source,
		publisher:    publisher,
		logger:       logger,
	}
}

func (s *KeeperService) KeepersByYear(ctx context.Context, year int) (KeeperBoard, error) {
	if year <= 0 {
		return KeeperBoard{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return KeeperBoard{}, fmt.Errorf("list keepers year=%d: %w", year, err)
	}

	lock, _, err := s.repo.GetTradeLock(ctx, year)
	if err != nil {
		return KeeperBoard{}, fmt.Errorf("get keeper trade lock year=%d: %w", year, err)
	}

	return KeeperBoard{
		Year:      year,
		Keepers:   items,
		Locked:    lock.Locked,
		LockedAt:  lock.LockedAt,
		UpdatedAt: lock.UpdatedAt,
	}, nil
}

// SaveKeepers replaces one roster's keeper selections for the year. Saves
// are refused once the season's trade lock is on.
func (s *KeeperService) SaveKeepers(ctx context.Context, year, rosterID int, inputs []KeeperInput) ([]keeper.Keeper, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KeeperService.SaveKeepers")
	defer span.End()

	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if rosterID <= 0 {
		return nil, fmt.Errorf("%w: roster id is required", ErrInvalidInput)
	}

	lock, _, err := s.repo.GetTradeLock(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("get keeper trade lock year=%d: %w", year, err)
	}
	if lock.Locked {
		return nil, fmt.Errorf("%w: keeper selections are locked for %d", ErrUnauthorized, year)
	}

	items := make([]keeper.Keeper, 0, len(inputs))
	for _, input := range inputs {
		item := keeper.Keeper{
			Year:              year,
			RosterID:          rosterID,
			PlayerID:          strings.TrimSpace(input.PlayerID),
			PlayerName:        strings.TrimSpace(input.PlayerName),
			Position:          strings.TrimSpace(input.Position),
			Team:              strings.TrimSpace(input.Team),
			TradeFromRosterID: input.TradeFromRosterID,
			TradeAmount:       input.TradeAmount,
			TradeNote:         strings.TrimSpace(input.TradeNote),
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		items = append(items, item)
	}

	saved, err := s.repo.ReplaceForRoster(ctx, year, rosterID, items)
	if err != nil {
		return nil, fmt.Errorf("save keepers year=%d roster=%d: %w", year, rosterID, err)
	}

	s.logger.InfoContext(ctx, "keepers saved", "year", year, "roster_id", rosterID, "count", len(saved))
	if s.publisher != nil {
		s.publisher.PublishKeeperUpdate(year, rosterID, saved)
	}

	return saved, nil
}

// TradeLock returns the lock row for a year; an unset year reads unlocked.
func (s *KeeperService) TradeLock(ctx context.Context, year int) (keeper.TradeLock, error) {
	if year <= 0 {
		return keeper.TradeLock{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	lock, found, err := s.repo.GetTradeLock(ctx, year)
	if err != nil {
		return keeper.TradeLock{}, fmt.Errorf("get keeper trade lock year=%d: %w", year, err)
	}
	if !found {
		return keeper.TradeLock{SeasonYear: year}, nil
	}
	return lock, nil
}

func (s *KeeperService) SetTradeLock(ctx context.Context, year int, locked bool) (keeper.TradeLock, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KeeperService.SetTradeLock")
	defer span.End()

	if year <= 0 {
		return keeper.TradeLock{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	lock, err := s.repo.UpsertTradeLock(ctx, year, locked)
	if err != nil {
		return keeper.TradeLock{}, fmt.Errorf("set keeper trade lock year=%d: %w", year, err)
	}

	s.logger.InfoContext(ctx, "keeper trade lock updated", "year", year, "locked", locked)
	return lock, nil
}

// FinalRosters resolves the year's Sleeper rosters with player identities
// and drafted flags, the raw material for keeper picks.
func (s *KeeperService) FinalRosters(ctx context.Context, year int) ([]FinalRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KeeperService.FinalRosters")
	defer span.End()

	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if s.source == nil {
		return nil, fmt.Errorf("%w: sleeper client not configured", ErrDependencyUnavailable)
	}

	settings, found, err := s.settingsRepo.GetSettings(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("get league settings year=%d: %w", year, err)
	}
	if !found || strings.TrimSpace(settings.LeagueID) == "" {
		return nil, fmt.Errorf("%w: no sleeper league id configured for year %d", ErrInvalidInput, year)
	}

	rosters, err := s.source.Rosters(ctx, settings.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch rosters league=%s: %v", ErrDependencyUnavailable, settings.LeagueID, err)
	}

	players, err := s.source.Players(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "player catalog unavailable, roster names degraded", "error", err)
		players = nil
	}

	drafted := s.draftedPlayers(ctx, settings.LeagueID)

	out := make([]FinalRoster, 0, len(rosters))
	for _, roster := range rosters {
		entry := FinalRoster{
			RosterID: roster.RosterID,
			OwnerID:  roster.OwnerID,
			Players:  make([]RosterPlayer, 0, len(roster.Players)),
		}
		for _, playerID := range roster.Players {
			rp := RosterPlayer{PlayerID: playerID, Name: playerID, Drafted: drafted[playerID]}
			if p, ok := players[playerID]; ok {
				rp.Name = p.DisplayName()
				rp.Position = p.Position
				rp.Team = p.Team
			} else if looksLikeTeamCode(playerID) {
				rp.Name = playerID
				rp.Position = "DEF"
				rp.Team = playerID
			}
			entry.Players = append(entry.Players, rp)
		}
		sort.Slice(entry.Players, func(i, j int) bool { return entry.Players[i].Name < entry.Players[j].Name })
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RosterID < out[j].RosterID })

	return out, nil
}

// draftedPlayers collects the player ids taken in the league's draft. Any
// failure degrades to no flags rather than blocking the roster view.
func (s *KeeperService) draftedPlayers(ctx context.Context, leagueID string) map[string]bool {
	drafts, err := s.source.Drafts(ctx, leagueID)
	if err != nil || len(drafts) == 0 {
		if err != nil {
			s.logger.WarnContext(ctx, "drafts unavailable, drafted flags skipped", "league_id", leagueID, "error", err)
		}
		return map[string]bool{}
	}

	picks, err := s.source.DraftPicks(ctx, drafts[0].DraftID)
	if err != nil {
		s.logger.WarnContext(ctx, "draft picks unavailable, drafted flags skipped", "draft_id", drafts[0].DraftID, "error", err)
		return map[string]bool{}
	}

	drafted := make(map[string]bool, len(picks))
	for _, pick := range picks {
		if pick.PlayerID != "" {
			drafted[pick.PlayerID] = true
		}
	}
	return drafted
}
