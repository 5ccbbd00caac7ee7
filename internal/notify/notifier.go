package notify

import (
	"context"
	"strings"

	"github.com/standupbot/standup-services/pkg/metrics"
)

// DefaultReminderTemplate is used when a notify request supplies no template.
// The {date} placeholder is replaced with the report date.
const DefaultReminderTemplate = "It's time for your daily standup report for {date}! Please share what you've been working on."

// Notifier sends messages to a single named recipient.
type Notifier interface {
	// Send delivers a plain text message.
	Send(ctx context.Context, recipient, text string) error
	// SendReminder delivers the richer standup reminder prompt for a date.
	SendReminder(ctx context.Context, recipient, date string) error
}

// Result is the per-recipient outcome of a notification batch.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Service fans a standup notification out to a list of recipients.
type Service struct {
	notifier Notifier
}

func NewService(n Notifier) *Service {
	return &Service{notifier: n}
}

// NotifyStandup formats template with the date and sends it to every
// recipient. An empty template sends the default rich reminder instead.
// Per-recipient failures are collected into the returned map and never abort
// the batch.
func (s *Service) NotifyStandup(ctx context.Context, recipients []string, template, date string) map[string]Result {
	results := make(map[string]Result, len(recipients))
	for _, recipient := range recipients {
		var err error
		if template == "" {
			err = s.notifier.SendReminder(ctx, recipient, date)
		} else {
			err = s.notifier.Send(ctx, recipient, strings.ReplaceAll(template, "{date}", date))
		}
		if err != nil {
			metrics.NotificationsTotal.WithLabelValues("error").Inc()
			results[recipient] = Result{OK: false, Error: err.Error()}
			continue
		}
		metrics.NotificationsTotal.WithLabelValues("ok").Inc()
		results[recipient] = Result{OK: true}
	}
	return results
}
