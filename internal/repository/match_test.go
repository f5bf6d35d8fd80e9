package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/testing/suite"
)

const snapshotTTL = time.Hour

type repoFactory func(t *testing.T) (context.Context, MatchRepository)

func repoFactories() map[string]repoFactory {
	return map[string]repoFactory{
		"redis": func(t *testing.T) (context.Context, MatchRepository) {
			ctx, st := suite.New(t)
			return ctx, NewMatchRepository(st.Storage, snapshotTTL)
		},
		"memory": func(_ *testing.T) (context.Context, MatchRepository) {
			return context.Background(), NewMemoryMatchRepository()
		},
	}
}

func newTestMatch(id string, startedAt time.Time) *entity.Match {
	return entity.NewMatch(id, "ALI", "BOB", startedAt)
}

func TestMatchRepository_CreateOrUpdate(t *testing.T) {
	for name, newRepo := range repoFactories() {
		t.Run(name+"_RoundTrip", func(t *testing.T) {
			ctx, matchRepo := newRepo(t)

			// Given: a match after one move
			match := newTestMatch("m-1", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
			board := entity.NewBoard()
			board.Place(3, entity.First)
			match.Record(3, entity.Second, board)

			// When: it is stored and read back
			require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))
			stored, err := matchRepo.GetByID(ctx, match.ID)

			// Then: the snapshot is unchanged
			require.NoError(t, err)
			assert.Equal(t, match.ID, stored.ID)
			assert.Equal(t, "ALI", stored.First)
			assert.Equal(t, "BOB", stored.Second)
			assert.Equal(t, "2", stored.Turn)
			assert.Equal(t, []int{3}, stored.Moves)
			assert.Equal(t, board.Rows(), stored.Board)
			assert.True(t, match.StartedAt.Equal(stored.StartedAt))
			assert.True(t, stored.IsOngoing())
		})

		t.Run(name+"_Overwrite", func(t *testing.T) {
			ctx, matchRepo := newRepo(t)

			// Given: a stored match
			match := newTestMatch("m-1", time.Now().UTC())
			require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

			// When: the same match is stored after a move
			board := entity.NewBoard()
			board.Place(0, entity.First)
			match.Record(0, entity.Second, board)
			require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

			// Then: the latest snapshot wins
			stored, err := matchRepo.GetByID(ctx, match.ID)
			require.NoError(t, err)
			assert.Equal(t, []int{0}, stored.Moves)
		})

		t.Run(name+"_StoredCopyIsDetached", func(t *testing.T) {
			ctx, matchRepo := newRepo(t)

			// Given: a stored match
			match := newTestMatch("m-1", time.Now().UTC())
			require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

			// When: the caller keeps mutating its snapshot
			match.Record(2, entity.Second, entity.NewBoard())

			// Then: the stored copy is not affected
			stored, err := matchRepo.GetByID(ctx, match.ID)
			require.NoError(t, err)
			assert.Empty(t, stored.Moves)
		})
	}
}

func TestMatchRepository_GetByID(t *testing.T) {
	for name, newRepo := range repoFactories() {
		t.Run(name+"_NotFound", func(t *testing.T) {
			ctx, matchRepo := newRepo(t)

			// When: GetByID is called with a non-existent ID
			match, err := matchRepo.GetByID(ctx, "missing")

			// Then: ErrMatchNotFound is returned
			require.ErrorIs(t, err, apperror.ErrMatchNotFound)
			assert.Nil(t, match)
		})
	}
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	for name, newRepo := range repoFactories() {
		t.Run(name+"_Success", func(t *testing.T) {
			ctx, matchRepo := newRepo(t)

			// Given: a stored match
			match := newTestMatch("m-1", time.Now().UTC())
			require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

			// When: it is deleted
			err := matchRepo.DeleteByID(ctx, match.ID)

			// Then: it is gone
			require.NoError(t, err)
			_, err = matchRepo.GetByID(ctx, match.ID)
			require.ErrorIs(t, err, apperror.ErrMatchNotFound)
		})

		t.Run(name+"_NotFound", func(t *testing.T) {
			ctx, matchRepo := newRepo(t)

			err := matchRepo.DeleteByID(ctx, "missing")

			require.ErrorIs(t, err, apperror.ErrMatchNotFound)
		})
	}
}

func TestMatchRepository_List(t *testing.T) {
	for name, newRepo := range repoFactories() {
		t.Run(name+"_Empty", func(t *testing.T) {
			ctx, matchRepo := newRepo(t)

			matches, err := matchRepo.List(ctx)

			require.NoError(t, err)
			assert.NotNil(t, matches)
			assert.Empty(t, matches)
		})

		t.Run(name+"_OldestFirst", func(t *testing.T) {
			ctx, matchRepo := newRepo(t)

			// Given: three matches stored out of order
			start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
			require.NoError(t, matchRepo.CreateOrUpdate(ctx, newTestMatch("c", start.Add(2*time.Minute))))
			require.NoError(t, matchRepo.CreateOrUpdate(ctx, newTestMatch("a", start)))
			require.NoError(t, matchRepo.CreateOrUpdate(ctx, newTestMatch("b", start.Add(time.Minute))))

			// When: listing
			matches, err := matchRepo.List(ctx)

			// Then: they come back by start time
			require.NoError(t, err)
			require.Len(t, matches, 3)
			assert.Equal(t, "a", matches[0].ID)
			assert.Equal(t, "b", matches[1].ID)
			assert.Equal(t, "c", matches[2].ID)
		})
	}
}

func TestMatchRepository_TTL(t *testing.T) {
	ctx, st := suite.New(t)
	matchRepo := NewMatchRepository(st.Storage, snapshotTTL)

	// Given: a stored match
	match := newTestMatch("m-1", time.Now().UTC())
	require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))
	assert.Equal(t, snapshotTTL, st.Mini.TTL(matchKey(match.ID)))

	// When: the snapshot outlives its TTL
	st.Mini.FastForward(snapshotTTL + time.Second)

	// Then: it is no longer listed or found
	matches, err := matchRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = matchRepo.GetByID(ctx, match.ID)
	require.ErrorIs(t, err, apperror.ErrMatchNotFound)
}

func TestMatchRepository_Docker(t *testing.T) {
	ctx, st := suite.NewDocker(t)
	matchRepo := NewMatchRepository(st.Storage, snapshotTTL)

	// Given: a stored match
	match := newTestMatch("m-1", time.Now().UTC())
	require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

	// When: it is listed and deleted
	matches, err := matchRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, match.ID, matches[0].ID)

	require.NoError(t, matchRepo.DeleteByID(ctx, match.ID))

	// Then: redis no longer holds it
	_, err = matchRepo.GetByID(ctx, match.ID)
	require.ErrorIs(t, err, apperror.ErrMatchNotFound)
}
