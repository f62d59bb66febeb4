package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridironhq/keeper-league/internal/domain/keeper"
	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/domain/season"
	"github.com/gridironhq/keeper-league/internal/domain/trade"
)

func TestManagerRepository_CRUD(t *testing.T) {
	repo := NewManagerRepository([]manager.Manager{
		{NameID: "john", FullName: "John Smith", Active: true},
		{NameID: "sara", FullName: "Sara Lee", Active: false},
	})

	active, err := repo.List(t.Context(), false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "john", active[0].NameID)

	all, err := repo.List(t.Context(), true)
	require.NoError(t, err)
	require.Len(t, all, 2)

	created, err := repo.Create(t.Context(), manager.Manager{NameID: "mike", FullName: "Mike Jones", Active: true})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, found, err := repo.GetByNameID(t.Context(), "mike")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Mike Jones", got.FullName)

	got.FullName = "Michael Jones"
	updated, err := repo.Update(t.Context(), got)
	require.NoError(t, err)
	require.True(t, updated)

	deleted, err := repo.Delete(t.Context(), "mike")
	require.NoError(t, err)
	require.True(t, deleted)

	_, found, err = repo.GetByNameID(t.Context(), "mike")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSleeperIDRepository_SeasonScope(t *testing.T) {
	repo := NewSleeperIDRepository([]manager.SleeperIDMapping{
		{NameID: "john", SleeperUserID: "u-2023", Season: 2023},
		{NameID: "john", SleeperUserID: "u-2024", Season: 2024},
	})

	mappings, err := repo.ListMappingsBySeason(t.Context(), 2024)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	require.Equal(t, "u-2024", mappings[0].SleeperUserID)

	all, err := repo.ListMappings(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSeasonRepository_ChampionshipCounts(t *testing.T) {
	first := 1
	second := 2
	repo := NewSeasonRepository([]season.TeamSeason{
		{Year: 2023, NameID: "john", TeamName: "Team John", Wins: 11, Losses: 3, PlayoffFinish: &first},
		{Year: 2023, NameID: "sara", TeamName: "Team Sara", Wins: 9, Losses: 5, PlayoffFinish: &second},
		{Year: 2024, NameID: "john", TeamName: "Team John", Wins: 10, Losses: 4, PlayoffFinish: &first},
	})

	counts, err := repo.ChampionshipCounts(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, counts)
	require.Equal(t, "john", counts[0].NameID)
	require.Equal(t, 2, counts[0].Count)

	years, err := repo.CountDistinctYears(t.Context())
	require.NoError(t, err)
	require.Equal(t, 2, years)
}

func TestKeeperRepository_ReplaceForRoster(t *testing.T) {
	repo := NewKeeperRepository([]keeper.Keeper{
		{Year: 2024, RosterID: 1, PlayerID: "4046", PlayerName: "Patrick Mahomes"},
		{Year: 2024, RosterID: 2, PlayerID: "6794", PlayerName: "Justin Jefferson"},
	})

	saved, err := repo.ReplaceForRoster(t.Context(), 2024, 1, []keeper.Keeper{
		{PlayerID: "9509", PlayerName: "Bijan Robinson"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, 2024, saved[0].Year)
	require.Equal(t, 1, saved[0].RosterID)

	board, err := repo.ListByYear(t.Context(), 2024)
	require.NoError(t, err)
	require.Len(t, board, 2)

	roster, err := repo.ListByYearAndRoster(t.Context(), 2024, 1)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.Equal(t, "9509", roster[0].PlayerID)
}

func TestKeeperRepository_TradeLock(t *testing.T) {
	repo := NewKeeperRepository(nil)

	_, found, err := repo.GetTradeLock(t.Context(), 2024)
	require.NoError(t, err)
	require.False(t, found)

	lock, err := repo.UpsertTradeLock(t.Context(), 2024, true)
	require.NoError(t, err)
	require.True(t, lock.Locked)

	lock, found, err = repo.GetTradeLock(t.Context(), 2024)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, lock.Locked)
}

func TestTradeRepository_CRUD(t *testing.T) {
	repo := NewTradeRepository(nil)

	created, err := repo.Create(t.Context(), trade.Trade{Year: 2024, FromRosterID: 1, ToRosterID: 2, Amount: 15, Description: "third round pick"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	created.Amount = 20
	updated, err := repo.Update(t.Context(), created)
	require.NoError(t, err)
	require.True(t, updated)

	trades, err := repo.ListByYear(t.Context(), 2024)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.Equal(t, float64(20), trades[0].Amount)

	deleted, err := repo.Delete(t.Context(), created.ID)
	require.NoError(t, err)
	require.True(t, deleted)
}
