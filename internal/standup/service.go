package standup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/standupbot/standup-services/internal/models"
	"github.com/standupbot/standup-services/pkg/logger"
	"github.com/standupbot/standup-services/pkg/metrics"
)

const dateLayout = "2006-01-02"

// Confirmer delivers best-effort follow-up messages after a successful
// submission. A nil Confirmer disables follow-ups; failures are logged and
// never fail the submission itself.
type Confirmer interface {
	ConfirmSubmission(ctx context.Context, memberID string) error
	EscalateBlocker(ctx context.Context, memberID, blockers string) error
}

// Service encapsulates the submission and report business logic on top of a
// Repository.
type Service struct {
	repo       Repository
	confirmer  Confirmer
	reportOpts ReportOptions
}

func NewService(repo Repository, confirmer Confirmer, opts ReportOptions) *Service {
	return &Service{repo: repo, confirmer: confirmer, reportOpts: opts}
}

// Submit validates and stores a standup update. MemberID, yesterday and today
// are required; blockers defaults to the empty string. Resubmitting for the
// same (member, date) overwrites the earlier entry.
func (s *Service) Submit(ctx context.Context, memberID, date, yesterday, today, blockers string) (*models.StandupRecord, error) {
	if strings.TrimSpace(memberID) == "" {
		return nil, &ValidationError{Field: "member_id"}
	}
	if strings.TrimSpace(yesterday) == "" {
		return nil, &ValidationError{Field: "yesterday"}
	}
	if strings.TrimSpace(today) == "" {
		return nil, &ValidationError{Field: "today"}
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	rec := &models.StandupRecord{
		MemberID:    memberID,
		Date:        date,
		Yesterday:   yesterday,
		Today:       today,
		Blockers:    blockers,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	metrics.SubmissionsTotal.Inc()

	if s.confirmer != nil {
		if err := s.confirmer.ConfirmSubmission(ctx, memberID); err != nil {
			logger.Warnf("submission confirmation for %s failed: %v", memberID, err)
		}
		if blockers != "" {
			if err := s.confirmer.EscalateBlocker(ctx, memberID, blockers); err != nil {
				logger.Warnf("blocker escalation for %s failed: %v", memberID, err)
			}
		}
	}

	return rec, nil
}

// GenerateReport compiles the summary of all submissions for the given date.
// A date nobody submitted for yields an empty report, not an error; a store
// failure yields an error, never a partial report.
func (s *Service) GenerateReport(ctx context.Context, date string) (*models.Report, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	records, err := s.repo.QueryByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	metrics.ReportsGeneratedTotal.Inc()
	return aggregate(date, records, s.reportOpts), nil
}
