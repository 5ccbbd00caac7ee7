package standup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/standupbot/standup-services/internal/models"
)

func rec(member, yesterday, today, blockers string) models.StandupRecord {
	return models.StandupRecord{
		MemberID:    member,
		Date:        "2026-08-27",
		Yesterday:   yesterday,
		Today:       today,
		Blockers:    blockers,
		SubmittedAt: time.Now().UTC(),
	}
}

func TestAggregate_EmptyDate(t *testing.T) {
	rep := aggregate("2026-08-27", nil, ReportOptions{})

	require.Equal(t, "2026-08-27", rep.Date)
	require.Equal(t, 0, rep.SubmittedCount)
	require.Empty(t, rep.Entries)
	require.Empty(t, rep.BlockerSummary)
	require.Nil(t, rep.MissingMembers)
	require.False(t, rep.GeneratedAt.IsZero())
}

func TestAggregate_EntriesSortedByMember(t *testing.T) {
	records := []models.StandupRecord{
		rec("carol@example.com", "c1", "c2", ""),
		rec("alice@example.com", "a1", "a2", ""),
		rec("bob@example.com", "b1", "b2", ""),
	}
	rep := aggregate("2026-08-27", records, ReportOptions{})

	require.Equal(t, 3, rep.SubmittedCount)
	require.Equal(t, "alice@example.com", rep.Entries[0].MemberID)
	require.Equal(t, "bob@example.com", rep.Entries[1].MemberID)
	require.Equal(t, "carol@example.com", rep.Entries[2].MemberID)
	require.Equal(t, "a1", rep.Entries[0].Yesterday)
	require.Equal(t, "a2", rep.Entries[0].Today)
}

func TestAggregate_BlockerCountsFirstSeenOrder(t *testing.T) {
	records := []models.StandupRecord{
		rec("alice@example.com", "x", "y", "waiting on deploy"),
		rec("bob@example.com", "x", "y", ""),
		rec("carol@example.com", "x", "y", "flaky CI"),
		rec("dave@example.com", "x", "y", "waiting on deploy"),
	}
	rep := aggregate("2026-08-27", records, ReportOptions{})

	require.Len(t, rep.BlockerSummary, 2)
	require.Equal(t, models.BlockerCount{Text: "waiting on deploy", Count: 2}, rep.BlockerSummary[0])
	require.Equal(t, models.BlockerCount{Text: "flaky CI", Count: 1}, rep.BlockerSummary[1])
}

func TestAggregate_BlockerMatchingIsExactByDefault(t *testing.T) {
	records := []models.StandupRecord{
		rec("alice@example.com", "x", "y", "Waiting on deploy"),
		rec("bob@example.com", "x", "y", "waiting on deploy"),
	}

	rep := aggregate("2026-08-27", records, ReportOptions{})
	require.Len(t, rep.BlockerSummary, 2)

	folded := aggregate("2026-08-27", records, ReportOptions{FoldBlockerCase: true})
	require.Len(t, folded.BlockerSummary, 1)
	require.Equal(t, 2, folded.BlockerSummary[0].Count)
	// first occurrence decides the displayed text
	require.Equal(t, "Waiting on deploy", folded.BlockerSummary[0].Text)
}

func TestAggregate_MissingMembersFromRoster(t *testing.T) {
	records := []models.StandupRecord{
		rec("bob@example.com", "x", "y", ""),
	}
	opts := ReportOptions{Roster: []string{"carol@example.com", "alice@example.com", "bob@example.com"}}
	rep := aggregate("2026-08-27", records, opts)

	require.Equal(t, []string{"alice@example.com", "carol@example.com"}, rep.MissingMembers)

	// everyone submitted -> empty but present
	all := []models.StandupRecord{
		rec("alice@example.com", "x", "y", ""),
		rec("bob@example.com", "x", "y", ""),
		rec("carol@example.com", "x", "y", ""),
	}
	rep2 := aggregate("2026-08-27", all, opts)
	require.NotNil(t, rep2.MissingMembers)
	require.Empty(t, rep2.MissingMembers)
}
