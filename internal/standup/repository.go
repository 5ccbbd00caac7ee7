package standup

import (
	"context"

	"github.com/standupbot/standup-services/internal/models"
)

// Repository defines persistence operations for standup records.
type Repository interface {
	// Upsert stores the record, replacing any existing record for the same
	// (MemberID, Date) pair.
	Upsert(ctx context.Context, rec *models.StandupRecord) error
	// QueryByDate returns every record submitted for the given date. Order is
	// not guaranteed; the aggregator sorts.
	QueryByDate(ctx context.Context, date string) ([]models.StandupRecord, error)
}
