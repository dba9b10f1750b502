package club_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/database"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/fixtures"
	"github.com/mauv0809/tt-encounter/internal/match"
	"github.com/mauv0809/tt-encounter/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) club.ClubStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return club.New(db)
}

// seedEncounter creates two teams of four and a standard encounter.
func seedEncounter(t *testing.T, store club.ClubStore) *encounter.Encounter {
	t.Helper()
	ctx := context.Background()

	team1, err := store.CreateTeam(ctx, "Alpha", 0)
	require.NoError(t, err)
	team2, err := store.CreateTeam(ctx, "Beta", 1)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := store.AddPlayer(ctx, team1.ID, fmt.Sprintf("A%d", i), i)
		require.NoError(t, err)
		_, err = store.AddPlayer(ctx, team2.ID, fmt.Sprintf("B%d", i), i)
		require.NoError(t, err)
	}
	roster1, err := store.GetRoster(ctx, team1.ID)
	require.NoError(t, err)
	roster2, err := store.GetRoster(ctx, team2.ID)
	require.NoError(t, err)

	enc := &encounter.Encounter{Team1: *team1, Team2: *team2, NumberOfTables: 2, Format: fixtures.FormatAcquired}
	matches, err := fixtures.Generate("", roster1, roster2, enc.Format)
	require.NoError(t, err)
	require.NoError(t, store.CreateEncounter(ctx, enc, matches))
	return enc
}

func TestCreateEncounter(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	enc := seedEncounter(t, store)
	require.NotEmpty(t, enc.ID)

	got, err := store.GetEncounter(ctx, enc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Team1.Name)
	assert.Equal(t, "Beta", got.Team2.Name)
	assert.Equal(t, encounter.StatusActive, got.Status)
	assert.Equal(t, fixtures.FormatAcquired, got.Format)
	assert.Equal(t, 2, got.NumberOfTables)

	matches, err := store.GetMatches(ctx, enc.ID)
	require.NoError(t, err)
	require.Len(t, matches, fixtures.StandardMatchCount)
	for i, m := range matches {
		assert.Equal(t, i+1, m.MatchNumber)
		assert.Equal(t, match.StatusWaiting, m.Status)
		assert.Empty(t, m.Sets)
		assert.Nil(t, m.TableNumber)
	}
	assert.Equal(t, "A0", matches[4].Player1.Name)
	assert.Equal(t, "B1", matches[4].Player2.Name)
	assert.True(t, matches[8].IsDouble)
	assert.Equal(t, enc.Team2.ID, matches[8].Player2.TeamID)

	_, err = store.GetEncounter(ctx, "missing")
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func TestSaveMatch_VersionCheck(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	enc := seedEncounter(t, store)
	matches, err := store.GetMatches(ctx, enc.ID)
	require.NoError(t, err)

	first, err := store.GetMatch(ctx, matches[0].ID)
	require.NoError(t, err)
	stale, err := store.GetMatch(ctx, matches[0].ID)
	require.NoError(t, err)

	first.Launch()
	first.UpdateScore(scoring.Side1, 1)
	require.NoError(t, store.SaveMatch(ctx, first))
	assert.Equal(t, 1, first.Version)

	stale.Launch()
	err = store.SaveMatch(ctx, stale)
	assert.ErrorIs(t, err, club.ErrVersionConflict)

	reloaded, err := store.GetMatch(ctx, matches[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []scoring.Set{{Side1: 1}}, reloaded.Sets)
	assert.Equal(t, 1, reloaded.Version)

	missing := match.Match{ID: "missing"}
	assert.ErrorIs(t, store.SaveMatch(ctx, &missing), club.ErrNotFound)
}

func TestFinishAndResetMatch(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	enc := seedEncounter(t, store)
	matches, err := store.GetMatches(ctx, enc.ID)
	require.NoError(t, err)

	m := matches[0]
	m.Sets = []scoring.Set{{Side1: 11, Side2: 3}, {Side1: 11, Side2: 3}, {Side1: 11, Side2: 3}}
	term, ok := m.Terminate()
	require.True(t, ok)
	require.NoError(t, store.FinishMatch(ctx, &m, term.WinnerTeamID))

	team, err := store.GetTeam(ctx, enc.Team1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, team.MatchesWon)

	rev, ok := m.Reset()
	require.True(t, ok)
	require.NoError(t, store.ResetFinishedMatch(ctx, &m, rev.TeamID))
	team, err = store.GetTeam(ctx, enc.Team1.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, team.MatchesWon)

	t.Run("decrement is clamped at zero", func(t *testing.T) {
		require.NoError(t, store.ResetFinishedMatch(ctx, &m, enc.Team1.ID))
		team, err := store.GetTeam(ctx, enc.Team1.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, team.MatchesWon)
	})

	t.Run("stale finish credits nobody", func(t *testing.T) {
		stale := m
		stale.Version--
		stale.Sets = []scoring.Set{{Side1: 11, Side2: 3}, {Side1: 11, Side2: 3}, {Side1: 11, Side2: 3}}
		term, ok := stale.Terminate()
		require.True(t, ok)
		err := store.FinishMatch(ctx, &stale, term.WinnerTeamID)
		assert.ErrorIs(t, err, club.ErrVersionConflict)

		team, err := store.GetTeam(ctx, enc.Team1.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, team.MatchesWon)
	})
}

func TestCancelWaitingMatch(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	enc := seedEncounter(t, store)
	matches, err := store.GetMatches(ctx, enc.ID)
	require.NoError(t, err)

	playing := matches[1]
	require.True(t, playing.Start(1))
	require.NoError(t, store.SaveMatch(ctx, &playing))

	require.NoError(t, store.CancelWaitingMatch(ctx, matches[0].ID))
	require.NoError(t, store.CancelWaitingMatch(ctx, playing.ID))

	got, err := store.GetMatch(ctx, matches[0].ID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusCancelled, got.Status)

	got, err = store.GetMatch(ctx, playing.ID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusInProgress, got.Status, "in progress match is not cancelled")
}

func TestSaveMatch_TableTaken(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	enc := seedEncounter(t, store)
	matches, err := store.GetMatches(ctx, enc.ID)
	require.NoError(t, err)

	first, second := matches[0], matches[1]
	require.True(t, first.Start(1))
	require.NoError(t, store.SaveMatch(ctx, &first))

	require.True(t, second.Start(1))
	assert.ErrorIs(t, store.SaveMatch(ctx, &second), club.ErrTableTaken)
}

func TestSetCurrentEncounter(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	first := seedEncounter(t, store)
	second := seedEncounter(t, store)

	_, err := store.GetCurrentEncounter(ctx)
	assert.ErrorIs(t, err, club.ErrNotFound)

	require.NoError(t, store.SetCurrentEncounter(ctx, first.ID))
	require.NoError(t, store.SetCurrentEncounter(ctx, second.ID))

	current, err := store.GetCurrentEncounter(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	all, err := store.ListEncounters(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	currentCount := 0
	for _, enc := range all {
		if enc.IsCurrent {
			currentCount++
		}
	}
	assert.Equal(t, 1, currentCount)

	assert.ErrorIs(t, store.SetCurrentEncounter(ctx, "missing"), club.ErrNotFound)
}
