package standup

import (
	"sort"
	"strings"
	"time"

	"github.com/standupbot/standup-services/internal/models"
)

// ReportOptions hold the aggregation knobs that vary per deployment.
type ReportOptions struct {
	// Roster is the expected set of member ids. When non-empty, reports
	// include the members who did not submit. When empty, MissingMembers is
	// omitted entirely.
	Roster []string
	// FoldBlockerCase groups blocker texts case-insensitively. The default is
	// exact, case-sensitive matching.
	FoldBlockerCase bool
}

// aggregate turns the record set for one date into a Report. It is a pure,
// single-pass transform: records are sorted by member id for deterministic
// output, distinct non-empty blocker texts are frequency-counted in
// first-seen order, and the roster (when supplied) yields missing members.
func aggregate(date string, records []models.StandupRecord, opts ReportOptions) *models.Report {
	sort.Slice(records, func(i, j int) bool {
		return records[i].MemberID < records[j].MemberID
	})

	entries := make([]models.MemberUpdate, 0, len(records))
	for _, r := range records {
		entries = append(entries, models.MemberUpdate{
			MemberID:  r.MemberID,
			Yesterday: r.Yesterday,
			Today:     r.Today,
			Blockers:  r.Blockers,
		})
	}

	counts := make(map[string]int)
	var order []string
	display := make(map[string]string)
	for _, r := range records {
		if r.Blockers == "" {
			continue
		}
		key := r.Blockers
		if opts.FoldBlockerCase {
			key = strings.ToLower(key)
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			display[key] = r.Blockers
		}
		counts[key]++
	}
	summary := make([]models.BlockerCount, 0, len(order))
	for _, key := range order {
		summary = append(summary, models.BlockerCount{Text: display[key], Count: counts[key]})
	}

	rep := &models.Report{
		Date:           date,
		Entries:        entries,
		BlockerSummary: summary,
		SubmittedCount: len(records),
		GeneratedAt:    time.Now().UTC(),
	}

	if len(opts.Roster) > 0 {
		submitted := make(map[string]bool, len(records))
		for _, r := range records {
			submitted[r.MemberID] = true
		}
		missing := make([]string, 0)
		for _, member := range opts.Roster {
			if !submitted[member] {
				missing = append(missing, member)
			}
		}
		sort.Strings(missing)
		rep.MissingMembers = missing
	}

	return rep
}
