package standup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mehanizm/airtable"

	"github.com/standupbot/standup-services/internal/models"
)

// Airtable column names for the standup table.
const (
	fieldEmail     = "Email"
	fieldDate      = "Date"
	fieldYesterday = "Yesterday"
	fieldToday     = "Today"
	fieldBlockers  = "Blockers"
	fieldTimestamp = "Timestamp"
)

// AirtableRepo persists standup records in a hosted Airtable base.
// One row per (Email, Date); Upsert updates the existing row when present.
type AirtableRepo struct {
	table *airtable.Table
}

func NewAirtableRepo(apiKey, baseID, tableName string) *AirtableRepo {
	client := airtable.NewClient(apiKey)
	return &AirtableRepo{table: client.GetTable(baseID, tableName)}
}

func (r *AirtableRepo) Upsert(ctx context.Context, rec *models.StandupRecord) error {
	fields := map[string]interface{}{
		fieldEmail:     rec.MemberID,
		fieldDate:      rec.Date,
		fieldYesterday: rec.Yesterday,
		fieldToday:     rec.Today,
		fieldBlockers:  rec.Blockers,
		fieldTimestamp: rec.SubmittedAt.UTC().Format(time.RFC3339),
	}

	formula := fmt.Sprintf(`AND({%s}=%s,{%s}=%s)`,
		fieldEmail, formulaString(rec.MemberID), fieldDate, formulaString(rec.Date))
	existing, err := r.table.GetRecords().
		WithFilterFormula(formula).
		ReturnFields(fieldEmail).
		Do()
	if err != nil {
		return fmt.Errorf("%w: airtable lookup: %v", ErrStoreUnavailable, err)
	}

	if len(existing.Records) > 0 {
		updated, err := existing.Records[0].UpdateRecordPartial(fields)
		if err != nil {
			return fmt.Errorf("%w: airtable update: %v", ErrStoreUnavailable, err)
		}
		rec.ID = updated.ID
		return nil
	}

	created, err := r.table.AddRecords(&airtable.Records{
		Records: []*airtable.Record{{Fields: fields}},
	})
	if err != nil {
		return fmt.Errorf("%w: airtable create: %v", ErrStoreUnavailable, err)
	}
	if len(created.Records) > 0 {
		rec.ID = created.Records[0].ID
	}
	return nil
}

func (r *AirtableRepo) QueryByDate(ctx context.Context, date string) ([]models.StandupRecord, error) {
	formula := fmt.Sprintf(`{%s}=%s`, fieldDate, formulaString(date))
	res, err := r.table.GetRecords().
		WithFilterFormula(formula).
		ReturnFields(fieldEmail, fieldDate, fieldYesterday, fieldToday, fieldBlockers, fieldTimestamp).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: airtable query: %v", ErrStoreUnavailable, err)
	}

	out := make([]models.StandupRecord, 0, len(res.Records))
	for _, row := range res.Records {
		rec := models.StandupRecord{
			ID:        row.ID,
			MemberID:  fieldString(row.Fields, fieldEmail),
			Date:      fieldString(row.Fields, fieldDate),
			Yesterday: fieldString(row.Fields, fieldYesterday),
			Today:     fieldString(row.Fields, fieldToday),
			Blockers:  fieldString(row.Fields, fieldBlockers),
		}
		if ts := fieldString(row.Fields, fieldTimestamp); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				rec.SubmittedAt = t
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// formulaString quotes a value for use inside an Airtable filter formula.
func formulaString(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
