package models

import "time"

// StandupRecord is one team member's standup submission for one date.
// At most one record exists per (MemberID, Date); resubmitting the same day
// overwrites the previous entry.
type StandupRecord struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	MemberID    string    `bson:"memberId" json:"member_id"` // member email address
	Date        string    `bson:"date" json:"date"`          // YYYY-MM-DD
	Yesterday   string    `bson:"yesterday" json:"yesterday"`
	Today       string    `bson:"today" json:"today"`
	Blockers    string    `bson:"blockers" json:"blockers"` // empty string means "no blocker"
	SubmittedAt time.Time `bson:"submittedAt" json:"submitted_at"`
}

// MemberUpdate is a single per-member entry inside a Report.
type MemberUpdate struct {
	MemberID  string `json:"member_id"`
	Yesterday string `json:"yesterday"`
	Today     string `json:"today"`
	Blockers  string `json:"blockers"`
}

// BlockerCount pairs a distinct non-empty blocker text with its occurrence
// count. Reports keep these in first-seen order.
type BlockerCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Report is the aggregated summary of all standup submissions for a date.
// Entries are ordered by member id ascending. MissingMembers is only present
// when a team roster was configured.
type Report struct {
	Date           string         `json:"date"`
	Entries        []MemberUpdate `json:"entries"`
	BlockerSummary []BlockerCount `json:"blocker_summary"`
	SubmittedCount int            `json:"submitted_count"`
	MissingMembers []string       `json:"missing_members,omitempty"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
