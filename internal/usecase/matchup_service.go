package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc/pool"

	"github.com/gridironhq/keeper-league/external/espn"
	"github.com/gridironhq/keeper-league/external/scoreboard"
	"github.com/gridironhq/keeper-league/external/sleeper"
	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/nfl"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
)

const (
	// nflRegularSeasonWeeks splits Sleeper's continuous week numbering into
	// the NFL regular season and postseason.
	nflRegularSeasonWeeks = 18

	summaryFetchWorkers = 4
	weekFetchWorkers    = 4
)

type lineupLeagueSource interface {
	NFLState(ctx context.Context) (sleeper.State, error)
	League(ctx context.Context, leagueID string) (sleeper.League, error)
	Rosters(ctx context.Context, leagueID string) ([]sleeper.Roster, error)
	Users(ctx context.Context, leagueID string) ([]sleeper.User, error)
	Matchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error)
	WinnersBracket(ctx context.Context, leagueID string) ([]sleeper.BracketGame, error)
	Players(ctx context.Context) (map[string]sleeper.Player, error)
	Stats(ctx context.Context, seasonType string, season, week int) (sleeper.WeekStats, error)
	Schedule(ctx context.Context, seasonType string, season int) ([]sleeper.ScheduleGame, error)
}

type lineupBoxScoreSource interface {
	WeekGames(ctx context.Context, season, week, seasonType int) (map[string]espn.Game, error)
	GameSummary(ctx context.Context, gameID string) (map[int64]*espn.PlayerStats, error)
}

type lineupScoreboardSource interface {
	WeekGameStatuses(ctx context.Context, season, week int, opts map[string]string) map[string]*scoreboard.GameMeta
}

// BoxScoreSource and ScoreboardSource are the optional providers a
// MatchupService runs without when they are not configured.
type (
	BoxScoreSource   = lineupBoxScoreSource
	ScoreboardSource = lineupScoreboardSource
)

// MatchupTeam is one roster's side of a head-to-head pairing.
type MatchupTeam struct {
	RosterID    int     `json:"roster_id"`
	TeamName    string  `json:"team_name"`
	ManagerName string  `json:"manager_name"`
	Points      float64 `json:"points"`
}

type WeekMatchup struct {
	MatchupID int          `json:"matchup_id"`
	Home      *MatchupTeam `json:"home"`
	Away      *MatchupTeam `json:"away"`
}

type SeasonWeek struct {
	Week     int           `json:"week"`
	Matchups []WeekMatchup `json:"matchups"`
}

type PlayoffRound struct {
	Round    int           `json:"round"`
	Matchups []WeekMatchup `json:"matchups"`
}

// StarterLineup is one starter enriched with everything the live view
// needs: identity, game context, box score line, and the resolved activity.
type StarterLineup struct {
	PlayerID              string                       `json:"player_id"`
	Name                  string                       `json:"name"`
	Position              string                       `json:"position,omitempty"`
	Team                  string                       `json:"team,omitempty"`
	Points                *float64                     `json:"points"`
	Opponent              string                       `json:"opponent,omitempty"`
	HomeAway              string                       `json:"home_away,omitempty"`
	GameStatus            string                       `json:"game_status,omitempty"`
	ActivityKey           string                       `json:"activity_key"`
	ScoreboardStatus      string                       `json:"scoreboard_status,omitempty"`
	ScoreboardActivityKey string                       `json:"scoreboard_activity_key,omitempty"`
	ScoreboardDetail      string                       `json:"scoreboard_detail,omitempty"`
	ESPNStats             map[string]map[string]string `json:"espn_stats,omitempty"`
	StatLine              string                       `json:"stat_line,omitempty"`
	IsBye                 bool                         `json:"is_bye"`
	InjuryStatus          string                       `json:"injury_status,omitempty"`
	Kickoff               int64                        `json:"kickoff,omitempty"`
}

type LineupTeam struct {
	MatchupTeam
	Starters []StarterLineup `json:"starters"`
}

type LineupMatchup struct {
	MatchupID int         `json:"matchup_id"`
	Home      *LineupTeam `json:"home"`
	Away      *LineupTeam `json:"away"`
}

type WeekLineups struct {
	Week     int             `json:"week"`
	Matchups []LineupMatchup `json:"matchups"`
}

// MatchupService reads head-to-head data from Sleeper and reconciles the
// active week's lineups against ESPN box scores and the scoreboard feed.
type MatchupService struct {
	league     lineupLeagueSource
	boxScores  lineupBoxScoreSource
	scoreboard lineupScoreboardSource
	logger     *logging.Logger
	clock      clockwork.Clock
}

func NewMatchupService(
	league lineupLeagueSource,
	boxScores lineupBoxScoreSource,
	sb lineupScoreboardSource,
	logger *logging.Logger,
	clock clockwork.Clock,
) *MatchupService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &MatchupService{
		league:     league,
		boxScores:  boxScores,
		scoreboard: sb,
		logger:     logger,
		clock:      clock,
	}
}

// SeasonMatchups returns every regular season week's pairings with team and
// manager names resolved.
func (s *MatchupService) SeasonMatchups(ctx context.Context, leagueID string, managers []manager.Manager) ([]SeasonWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.SeasonMatchups")
	defer span.End()

	if strings.TrimSpace(leagueID) == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	lg, err := s.league.League(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch league league=%s: %w", leagueID, err)
	}
	names, err := s.loadRosterNames(ctx, leagueID, managers)
	if err != nil {
		return nil, err
	}

	weeks := lg.Settings.RegularSeasonWeeks()
	if weeks <= 0 {
		return nil, fmt.Errorf("%w: league %s has no playoff week start", ErrDependencyUnavailable, leagueID)
	}

	out := make([]SeasonWeek, weeks)
	fetch := pool.New().WithContext(ctx).WithMaxGoroutines(weekFetchWorkers)
	for i := 0; i < weeks; i++ {
		week := i + 1
		idx := i
		fetch.Go(func(ctx context.Context) error {
			matchups, err := s.league.Matchups(ctx, leagueID, week)
			if err != nil {
				return fmt.Errorf("fetch matchups league=%s week=%d: %w", leagueID, week, err)
			}
			out[idx] = SeasonWeek{Week: week, Matchups: pairMatchups(matchups, names, nil)}
			return nil
		})
	}
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// PlayoffMatchups returns the postseason rounds with pairings limited to
// rosters seeded into the winners bracket. Seasons without a seeded bracket
// yield an empty slice.
func (s *MatchupService) PlayoffMatchups(ctx context.Context, leagueID string, managers []manager.Manager) ([]PlayoffRound, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.PlayoffMatchups")
	defer span.End()

	if strings.TrimSpace(leagueID) == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	lg, err := s.league.League(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch league league=%s: %w", leagueID, err)
	}
	playoffStart := lg.Settings.PlayoffWeekStart
	if playoffStart <= 0 {
		return nil, fmt.Errorf("%w: league %s has no playoff week start", ErrDependencyUnavailable, leagueID)
	}

	names, err := s.loadRosterNames(ctx, leagueID, managers)
	if err != nil {
		return nil, err
	}

	bracket, err := s.league.WinnersBracket(ctx, leagueID)
	if err != nil {
		s.logger.WarnContext(ctx, "winners bracket unavailable, returning empty playoff rounds", "league_id", leagueID, "error", err)
		return []PlayoffRound{}, nil
	}

	playoffRosters := make(map[int]struct{})
	totalRounds := 0
	for _, game := range bracket {
		if game.Round > totalRounds {
			totalRounds = game.Round
		}
		if game.Team1 > 0 && game.Team2 > 0 {
			playoffRosters[int(game.Team1)] = struct{}{}
			playoffRosters[int(game.Team2)] = struct{}{}
		}
	}
	if len(playoffRosters) == 0 || totalRounds <= 0 {
		return []PlayoffRound{}, nil
	}

	rounds := make([]PlayoffRound, totalRounds)
	fetch := pool.New().WithContext(ctx).WithMaxGoroutines(weekFetchWorkers)
	for i := 0; i < totalRounds; i++ {
		round := i + 1
		week := playoffStart + i
		idx := i
		fetch.Go(func(ctx context.Context) error {
			matchups, err := s.league.Matchups(ctx, leagueID, week)
			if err != nil {
				s.logger.WarnContext(ctx, "playoff week matchups unavailable", "league_id", leagueID, "week", week, "error", err)
				matchups = nil
			}
			paired := pairMatchups(matchups, names, playoffRosters)
			complete := paired[:0]
			for _, m := range paired {
				if m.Home != nil && m.Away != nil {
					complete = append(complete, m)
				}
			}
			rounds[idx] = PlayoffRound{Round: round, Matchups: complete}
			return nil
		})
	}
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	empty := true
	for _, round := range rounds {
		if len(round.Matchups) > 0 {
			empty = false
			break
		}
	}
	if empty {
		return []PlayoffRound{}, nil
	}

	return rounds, nil
}

// WeeklyMatchupsWithLineups returns one week's pairings with every starter
// enriched: identity, opponent, kickoff, box score line, and an activity
// classification reconciled across Sleeper, ESPN, and the scoreboard feed.
// Enrichment sources degrade independently; the base matchup data is always
// returned as long as Sleeper answers.
func (s *MatchupService) WeeklyMatchupsWithLineups(
	ctx context.Context,
	leagueID string,
	week int,
	managers []manager.Manager,
	year int,
) (WeekLineups, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.WeeklyMatchupsWithLineups")
	defer span.End()

	if strings.TrimSpace(leagueID) == "" {
		return WeekLineups{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if week <= 0 {
		state, err := s.league.NFLState(ctx)
		if err != nil {
			return WeekLineups{}, fmt.Errorf("%w: resolve active week: %v", ErrDependencyUnavailable, err)
		}
		week = state.WeekNumber()
		if week <= 0 {
			week = 1
		}
	}

	matchups, err := s.league.Matchups(ctx, leagueID, week)
	if err != nil {
		return WeekLineups{}, fmt.Errorf("fetch matchups league=%s week=%d: %w", leagueID, week, err)
	}
	names, err := s.loadRosterNames(ctx, leagueID, managers)
	if err != nil {
		return WeekLineups{}, err
	}

	enrich := s.loadEnrichment(ctx, year, week)

	byMatchup := make(map[int]*LineupMatchup)
	order := make([]int, 0, len(matchups))
	for _, m := range matchups {
		if m.MatchupID == nil {
			continue
		}
		id := *m.MatchupID
		entry, ok := byMatchup[id]
		if !ok {
			entry = &LineupMatchup{MatchupID: id}
			byMatchup[id] = entry
			order = append(order, id)
		}

		team := &LineupTeam{
			MatchupTeam: MatchupTeam{
				RosterID:    m.RosterID,
				TeamName:    names.teamName(m.RosterID),
				ManagerName: names.managerName(m.RosterID),
				Points:      m.Points,
			},
			Starters: s.buildStarters(m, enrich),
		}
		if entry.Home == nil {
			entry.Home = team
		} else if entry.Away == nil {
			entry.Away = team
		}
	}

	sort.Ints(order)
	out := WeekLineups{Week: week, Matchups: make([]LineupMatchup, 0, len(order))}
	for _, id := range order {
		out.Matchups = append(out.Matchups, *byMatchup[id])
	}

	return out, nil
}

// weekEnrichment is the degradable context around one week's lineups. Any
// field may be empty when its source was unreachable.
type weekEnrichment struct {
	players    map[string]sleeper.Player
	stats      sleeper.WeekStats
	schedule   []sleeper.ScheduleGame
	games      map[string]espn.Game
	scoreboard map[string]*scoreboard.GameMeta
	matcher    *PlayerMatcher

	nflWeek        int
	scheduleLoaded bool
}

func (s *MatchupService) loadEnrichment(ctx context.Context, year, week int) weekEnrichment {
	seasonType := "regular"
	espnSeasonType := espn.SeasonTypeRegular
	nflWeek := week
	if week > nflRegularSeasonWeeks {
		seasonType = "post"
		espnSeasonType = espn.SeasonTypePostseason
		nflWeek = week - nflRegularSeasonWeeks
	}

	out := weekEnrichment{nflWeek: nflWeek}

	players, err := s.league.Players(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "player directory unavailable, lineups degrade to ids", "error", err)
	} else {
		out.players = players
	}

	stats, err := s.league.Stats(ctx, seasonType, year, nflWeek)
	if err != nil {
		s.logger.WarnContext(ctx, "weekly stats unavailable", "season", year, "week", nflWeek, "error", err)
	} else {
		out.stats = stats
	}

	schedule, err := s.league.Schedule(ctx, seasonType, year)
	if err != nil {
		s.logger.WarnContext(ctx, "nfl schedule unavailable, bye detection disabled", "season", year, "error", err)
	} else {
		out.schedule = schedule
		// An empty schedule would read as a league-wide bye, so bye
		// detection needs real rows.
		out.scheduleLoaded = len(schedule) > 0
	}

	if s.boxScores != nil {
		games, err := s.boxScores.WeekGames(ctx, year, nflWeek, espnSeasonType)
		if err != nil {
			s.logger.WarnContext(ctx, "espn week games unavailable", "season", year, "week", nflWeek, "error", err)
		} else {
			out.games = games
		}
	}

	if s.scoreboard != nil {
		out.scoreboard = s.scoreboard.WeekGameStatuses(ctx, year, week, nil)
	}

	out.matcher = NewPlayerMatcher(s.fetchSummaries(ctx, out.games))

	return out
}

// fetchSummaries pulls box score summaries for every distinct game in the
// week concurrently and merges them into one athlete index.
func (s *MatchupService) fetchSummaries(ctx context.Context, games map[string]espn.Game) map[int64]*espn.PlayerStats {
	gameIDs := make([]string, 0, len(games))
	seen := make(map[string]struct{}, len(games))
	for _, game := range games {
		if game.GameID == "" {
			continue
		}
		if _, ok := seen[game.GameID]; ok {
			continue
		}
		seen[game.GameID] = struct{}{}
		gameIDs = append(gameIDs, game.GameID)
	}
	if len(gameIDs) == 0 {
		return nil
	}

	merged := make(map[int64]*espn.PlayerStats)
	var mu sync.Mutex

	fetch := pool.New().WithMaxGoroutines(summaryFetchWorkers)
	for _, gameID := range gameIDs {
		gameID := gameID
		fetch.Go(func() {
			summary, err := s.boxScores.GameSummary(ctx, gameID)
			if err != nil {
				s.logger.WarnContext(ctx, "game summary unavailable", "game_id", gameID, "error", err)
				return
			}
			mu.Lock()
			for id, stats := range summary {
				merged[id] = stats
			}
			mu.Unlock()
		})
	}
	fetch.Wait()

	return merged
}

func (s *MatchupService) buildStarters(m sleeper.Matchup, enrich weekEnrichment) []StarterLineup {
	now := s.clock.Now()

	out := make([]StarterLineup, 0, len(m.Starters))
	for i, playerID := range m.Starters {
		if playerID == "" || playerID == "0" {
			continue
		}

		starter := StarterLineup{PlayerID: playerID, Name: playerID}

		var espnID int64
		if info, ok := enrich.players[playerID]; ok {
			starter.Name = info.DisplayName()
			starter.Position = info.Position
			starter.Team = nfl.NormalizeTeam(info.Team)
			starter.InjuryStatus = info.InjuryStatus
			espnID = int64(info.ESPNID)
		} else if looksLikeTeamCode(playerID) {
			// Team defenses use the club abbreviation as their player id.
			starter.Team = nfl.NormalizeTeam(playerID)
			starter.Position = "DEF"
		}

		if i < len(m.StartersPoints) {
			v := m.StartersPoints[i]
			starter.Points = &v
		} else if v, ok := m.PlayersPoints[playerID]; ok {
			starter.Points = &v
		}

		statsAvailable := len(enrich.stats[playerID]) > 0

		if starter.Team != "" {
			if game, ok := enrich.games[starter.Team]; ok {
				starter.Opponent = game.Opponent
				if game.IsHome {
					starter.HomeAway = "home"
				} else {
					starter.HomeAway = "away"
				}
				starter.GameStatus = game.StatusDetail
				if starter.GameStatus == "" {
					starter.GameStatus = game.Status
				}
				starter.Kickoff = game.StartTime
			} else if enrich.scheduleLoaded {
				if sg, ok := scheduleGameFor(enrich.schedule, starter.Team, enrich.nflWeek); ok {
					opponent, home := scheduleOpponent(sg, starter.Team)
					starter.Opponent = opponent
					if home {
						starter.HomeAway = "home"
					} else {
						starter.HomeAway = "away"
					}
					starter.Kickoff = nfl.NormalizeTimestamp(sg.Date)
					starter.GameStatus = sg.Status
				} else {
					starter.IsBye = true
				}
			}

			if meta, ok := enrich.scoreboard[starter.Team]; ok && meta != nil {
				starter.ScoreboardStatus = string(meta.Status)
				starter.ScoreboardActivityKey = string(meta.ActivityKey)
				starter.ScoreboardDetail = meta.Detail
				if starter.Kickoff == 0 {
					starter.Kickoff = meta.StartTime
				}
				if starter.GameStatus == "" {
					starter.GameStatus = meta.RawStatusText
				}
			}
		}

		if enrich.matcher != nil {
			if match := enrich.matcher.Match(espnID, starter.Name, starter.Position); match != nil {
				starter.ESPNStats = match.Stats
				starter.StatLine = match.StatLine()
			}
		}

		activity := ClassifyActivity(StarterSignals{
			PlayerID:              playerID,
			Team:                  starter.Team,
			Opponent:              starter.Opponent,
			IsBye:                 starter.IsBye,
			Points:                starter.Points,
			StatsAvailable:        statsAvailable || starter.StatLine != "",
			Kickoff:               starter.Kickoff,
			GameStatus:            starter.GameStatus,
			RawGameStatus:         starter.GameStatus,
			ScoreboardStatus:      starter.ScoreboardStatus,
			ScoreboardActivityKey: starter.ScoreboardActivityKey,
			ScoreboardDetail:      starter.ScoreboardDetail,
		}, now)
		starter.ActivityKey = string(activity)

		out = append(out, starter)
	}

	return out
}

// rosterNameIndex resolves roster ids to display names the way the sync
// pipeline does: explicit manager mappings first, then Sleeper metadata.
type rosterNameIndex struct {
	teams    map[int]string
	managers map[int]string
}

func (n rosterNameIndex) teamName(rosterID int) string {
	if name, ok := n.teams[rosterID]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Team %d", rosterID)
}

func (n rosterNameIndex) managerName(rosterID int) string {
	if name, ok := n.managers[rosterID]; ok && name != "" {
		return name
	}
	return n.teamName(rosterID)
}

func (s *MatchupService) loadRosterNames(ctx context.Context, leagueID string, managers []manager.Manager) (rosterNameIndex, error) {
	rosters, err := s.league.Rosters(ctx, leagueID)
	if err != nil {
		return rosterNameIndex{}, fmt.Errorf("fetch rosters league=%s: %w", leagueID, err)
	}
	users, err := s.league.Users(ctx, leagueID)
	if err != nil {
		return rosterNameIndex{}, fmt.Errorf("fetch users league=%s: %w", leagueID, err)
	}

	return buildRosterNames(rosters, users, managers), nil
}

func buildRosterNames(rosters []sleeper.Roster, users []sleeper.User, managers []manager.Manager) rosterNameIndex {
	userIDToManager := make(map[string]string, len(managers))
	for _, m := range managers {
		if m.SleeperUserID != "" {
			userIDToManager[m.SleeperUserID] = m.FullName
		}
	}

	usersByID := make(map[string]sleeper.User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	out := rosterNameIndex{
		teams:    make(map[int]string, len(rosters)),
		managers: make(map[int]string, len(rosters)),
	}
	for _, r := range rosters {
		user := usersByID[r.OwnerID]

		teamName := r.Metadata["team_name"]
		if teamName == "" {
			teamName = user.Metadata["team_name"]
		}
		if teamName == "" {
			teamName = user.DisplayName
		}
		if teamName == "" {
			teamName = fmt.Sprintf("Team %d", r.RosterID)
		}

		out.teams[r.RosterID] = teamName
		if name := userIDToManager[r.OwnerID]; name != "" {
			out.managers[r.RosterID] = name
		} else {
			out.managers[r.RosterID] = teamName
		}
	}

	return out
}

// pairMatchups groups one week's roster rows by matchup id in encounter
// order. Rosters with a null matchup id (byes) are skipped, and rosterFilter
// (when non-nil) limits pairing to the given roster ids.
func pairMatchups(matchups []sleeper.Matchup, names rosterNameIndex, rosterFilter map[int]struct{}) []WeekMatchup {
	byID := make(map[int]*WeekMatchup)
	order := make([]int, 0, len(matchups))
	for _, m := range matchups {
		if m.MatchupID == nil {
			continue
		}
		if rosterFilter != nil {
			if _, ok := rosterFilter[m.RosterID]; !ok {
				continue
			}
		}

		id := *m.MatchupID
		entry, ok := byID[id]
		if !ok {
			entry = &WeekMatchup{MatchupID: id}
			byID[id] = entry
			order = append(order, id)
		}

		team := &MatchupTeam{
			RosterID:    m.RosterID,
			TeamName:    names.teamName(m.RosterID),
			ManagerName: names.managerName(m.RosterID),
			Points:      m.Points,
		}
		if entry.Home == nil {
			entry.Home = team
		} else if entry.Away == nil {
			entry.Away = team
		}
	}

	sort.Ints(order)
	out := make([]WeekMatchup, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}

	return out
}

func scheduleGameFor(schedule []sleeper.ScheduleGame, team string, week int) (sleeper.ScheduleGame, bool) {
	for _, game := range schedule {
		if week > 0 && game.Week != week {
			continue
		}
		if nfl.NormalizeTeam(game.Home) == team || nfl.NormalizeTeam(game.Away) == team {
			return game, true
		}
	}
	return sleeper.ScheduleGame{}, false
}

func scheduleOpponent(game sleeper.ScheduleGame, team string) (string, bool) {
	if nfl.NormalizeTeam(game.Home) == team {
		return nfl.NormalizeTeam(game.Away), true
	}
	return nfl.NormalizeTeam(game.Home), false
}

func looksLikeTeamCode(value string) bool {
	if len(value) < 2 || len(value) > 3 {
		return false
	}
	for _, r := range value {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
