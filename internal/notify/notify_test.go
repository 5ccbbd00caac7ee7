package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeNotifier records sends and fails for configured recipients.
type fakeNotifier struct {
	sent      map[string]string // recipient -> text
	reminders []string
	failFor   map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: map[string]string{}, failFor: map[string]bool{}}
}

func (f *fakeNotifier) Send(ctx context.Context, recipient, text string) error {
	if f.failFor[recipient] {
		return fmt.Errorf("channel closed for %s", recipient)
	}
	f.sent[recipient] = text
	return nil
}

func (f *fakeNotifier) SendReminder(ctx context.Context, recipient, date string) error {
	if f.failFor[recipient] {
		return fmt.Errorf("channel closed for %s", recipient)
	}
	f.reminders = append(f.reminders, recipient)
	return nil
}

func TestNotifyStandup_FormatsTemplate(t *testing.T) {
	fn := newFakeNotifier()
	svc := NewService(fn)

	results := svc.NotifyStandup(context.Background(),
		[]string{"alice@example.com"}, "Standup time for {date}!", "2024-01-10")

	require.Len(t, results, 1)
	require.True(t, results["alice@example.com"].OK)
	require.Equal(t, "Standup time for 2024-01-10!", fn.sent["alice@example.com"])
}

func TestNotifyStandup_EmptyTemplateSendsReminder(t *testing.T) {
	fn := newFakeNotifier()
	svc := NewService(fn)

	results := svc.NotifyStandup(context.Background(),
		[]string{"alice@example.com", "bob@example.com"}, "", "2024-01-10")

	require.Len(t, results, 2)
	require.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, fn.reminders)
}

func TestNotifyStandup_CollectsPerRecipientFailures(t *testing.T) {
	fn := newFakeNotifier()
	fn.failFor["bob@example.com"] = true
	svc := NewService(fn)

	results := svc.NotifyStandup(context.Background(),
		[]string{"alice@example.com", "bob@example.com", "carol@example.com"},
		"reminder for {date}", "2024-01-10")

	// one failure does not abort the batch
	require.Len(t, results, 3)
	require.True(t, results["alice@example.com"].OK)
	require.True(t, results["carol@example.com"].OK)
	require.False(t, results["bob@example.com"].OK)
	require.Contains(t, results["bob@example.com"].Error, "channel closed")
	require.Contains(t, fn.sent, "alice@example.com")
	require.Contains(t, fn.sent, "carol@example.com")
}
