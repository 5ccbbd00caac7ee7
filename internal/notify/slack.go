package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"

	"github.com/standupbot/standup-services/internal/directory"
)

// slackAPI is the subset of the Slack client the notifier needs; narrowed so
// tests can fake it.
type slackAPI interface {
	GetUserByEmailContext(ctx context.Context, email string) (*slack.User, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier delivers messages as Slack DMs. Recipients are addressed by
// email and resolved to Slack user IDs via users.lookupByEmail, with an
// optional Redis-backed cache in front of the lookup.
type SlackNotifier struct {
	api         slackAPI
	resolver    *directory.Resolver
	scrumMaster string // email; empty disables blocker escalation
}

// NewSlackNotifier creates a notifier for the given bot token. cache may be
// nil. scrumMaster is the email escalations go to; empty disables them.
func NewSlackNotifier(token, scrumMaster string, cache *redis.Client) *SlackNotifier {
	n := &SlackNotifier{api: slack.New(token), scrumMaster: scrumMaster}
	n.resolver = directory.NewResolver(n, cache, "slackid:", 24*time.Hour)
	return n
}

// LookupByEmail implements directory.Lookup against the Slack API.
func (n *SlackNotifier) LookupByEmail(ctx context.Context, email string) (string, error) {
	user, err := n.api.GetUserByEmailContext(ctx, email)
	if err != nil {
		return "", fmt.Errorf("slack user lookup for %s: %w", email, err)
	}
	return user.ID, nil
}

// Send delivers a plain text DM to the recipient email.
func (n *SlackNotifier) Send(ctx context.Context, recipient, text string) error {
	id, err := n.resolver.Resolve(ctx, recipient)
	if err != nil {
		return err
	}
	if _, _, err := n.api.PostMessageContext(ctx, id, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("slack post to %s: %w", recipient, err)
	}
	return nil
}

// SendReminder delivers the standup reminder prompt with a submit button.
func (n *SlackNotifier) SendReminder(ctx context.Context, recipient, date string) error {
	id, err := n.resolver.Resolve(ctx, recipient)
	if err != nil {
		return err
	}
	if _, _, err := n.api.PostMessageContext(ctx, id, slack.MsgOptionBlocks(reminderBlocks(id, date)...)); err != nil {
		return fmt.Errorf("slack reminder to %s: %w", recipient, err)
	}
	return nil
}

// ConfirmSubmission thanks the member for a recorded standup.
func (n *SlackNotifier) ConfirmSubmission(ctx context.Context, memberID string) error {
	id, err := n.resolver.Resolve(ctx, memberID)
	if err != nil {
		return err
	}
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, ":white_check_mark: Standup Submitted", true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Thanks <@%s>! Your standup update has been recorded.", id), false, false), nil, nil),
		slack.NewDividerBlock(),
		timestampContext(),
	}
	if _, _, err := n.api.PostMessageContext(ctx, id, slack.MsgOptionBlocks(blocks...)); err != nil {
		return fmt.Errorf("slack confirmation to %s: %w", memberID, err)
	}
	return nil
}

// EscalateBlocker notifies the scrum master that a member reported a blocker.
// A no-op when no scrum master is configured.
func (n *SlackNotifier) EscalateBlocker(ctx context.Context, memberID, blockers string) error {
	if n.scrumMaster == "" {
		return nil
	}
	id, err := n.resolver.Resolve(ctx, n.scrumMaster)
	if err != nil {
		return err
	}
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, ":warning: Team Member Has Blocker", true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Team Member:* %s", memberID), false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Blocker Summary:*\n%s", blockers), false, false), nil, nil),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			":point_right: *Action Required:* Please follow up with the team member to help resolve this blocker.", false, false), nil, nil),
		timestampContext(),
	}
	if _, _, err := n.api.PostMessageContext(ctx, id, slack.MsgOptionBlocks(blocks...)); err != nil {
		return fmt.Errorf("slack escalation to %s: %w", n.scrumMaster, err)
	}
	return nil
}

func reminderBlocks(userID, date string) []slack.Block {
	submit := slack.NewButtonBlockElement("standup.submit", date,
		slack.NewTextBlockObject(slack.PlainTextType, "Submit Standup Report", true, false))
	submit = submit.WithStyle(slack.StylePrimary)

	return []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, ":memo: Daily Standup Reminder", true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Hi <@%s> :wave:", userID), false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("It's time for your daily standup report for %s! Please share what you've been working on.", date), false, false), nil, nil),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			":rocket: *Ready to submit your standup?*\nClick the button below to start your standup report!", false, false), nil, nil),
		slack.NewActionBlock("standup_actions", submit),
		slack.NewDividerBlock(),
		timestampContext(),
	}
}

func timestampContext() *slack.ContextBlock {
	return slack.NewContextBlock("", slack.NewTextBlockObject(slack.MarkdownType,
		fmt.Sprintf(":clock3: %s", time.Now().UTC().Format("2006-01-02 15:04:05 UTC")), false, false))
}
