package standup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standupbot/standup-services/internal/models"
)

func TestMemoryRepo_UpsertOverwritesSameMemberDate(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first := rec("alice@example.com", "old yesterday", "old today", "")
	require.NoError(t, repo.Upsert(ctx, &first))
	require.NotEmpty(t, first.ID)

	second := rec("alice@example.com", "new yesterday", "new today", "blocked")
	require.NoError(t, repo.Upsert(ctx, &second))

	got, err := repo.QueryByDate(ctx, "2026-08-27")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "new yesterday", got[0].Yesterday)
	require.Equal(t, "blocked", got[0].Blockers)
}

func TestMemoryRepo_QueryByDateFiltersOtherDates(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	a := rec("alice@example.com", "x", "y", "")
	require.NoError(t, repo.Upsert(ctx, &a))

	other := models.StandupRecord{MemberID: "alice@example.com", Date: "2026-08-26", Yesterday: "x", Today: "y"}
	require.NoError(t, repo.Upsert(ctx, &other))

	got, err := repo.QueryByDate(ctx, "2026-08-27")
	require.NoError(t, err)
	require.Len(t, got, 1)

	none, err := repo.QueryByDate(ctx, "2000-01-01")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	a := rec("alice@example.com", "x", "y", "")
	require.NoError(t, repo.Upsert(ctx, &a))

	got, err := repo.QueryByDate(ctx, "2026-08-27")
	require.NoError(t, err)
	got[0].Yesterday = "mutated"

	again, err := repo.QueryByDate(ctx, "2026-08-27")
	require.NoError(t, err)
	require.Equal(t, "x", again[0].Yesterday)
}
