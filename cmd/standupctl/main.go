package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/standupbot/standup-services/internal/config"
	"github.com/standupbot/standup-services/internal/database"
	"github.com/standupbot/standup-services/internal/notify"
	"github.com/standupbot/standup-services/internal/standup"
	"github.com/standupbot/standup-services/internal/tokens"
	"github.com/standupbot/standup-services/pkg/logger"
)

// Context carries the wired services into command Run methods.
type Context struct {
	Cfg       *config.Config
	Svc       *standup.Service
	NotifySvc *notify.Service
}

type SubmitCmd struct {
	Member    string `short:"m" help:"Member email." required:""`
	Date      string `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
	Yesterday string `help:"What was done yesterday." required:""`
	Today     string `help:"What is planned today." required:""`
	Blockers  string `help:"Current blockers, empty means none."`
}

func (c *SubmitCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	rec, err := ctx.Svc.Submit(context.Background(), c.Member, date, c.Yesterday, c.Today, c.Blockers)
	if err != nil {
		return err
	}
	return printJSON(rec)
}

type ReportCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *ReportCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	rep, err := ctx.Svc.GenerateReport(context.Background(), date)
	if err != nil {
		return err
	}
	return printJSON(rep)
}

type NotifyCmd struct {
	Recipients []string `arg:"" optional:"" help:"Recipient emails; defaults to the configured roster."`
	Template   string   `short:"t" help:"Message template; {date} is replaced. Empty sends the rich reminder."`
	Date       string   `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	if ctx.NotifySvc == nil {
		return fmt.Errorf("notifications are disabled (NOTIFICATIONS_DISABLED is set)")
	}
	recipients := c.Recipients
	if len(recipients) == 0 {
		recipients = ctx.Cfg.Report.Roster
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients given and TEAM_ROSTER is empty")
	}
	date := c.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	results := ctx.NotifySvc.NotifyStandup(context.Background(), recipients, c.Template, date)
	return printJSON(map[string]interface{}{"date": date, "results": results})
}

type TokenCmd struct {
	Subject string        `arg:"" help:"Token subject, typically a service or user name."`
	TTL     time.Duration `help:"Token lifetime." default:"1h"`
}

func (c *TokenCmd) Run(ctx *Context) error {
	if ctx.Cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	tok, err := tokens.GenerateServiceToken(ctx.Cfg.JWT.Secret, c.Subject, c.TTL)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}

var CLI struct {
	Version kong.VersionFlag

	Submit SubmitCmd `cmd:"" help:"Record a standup update."`
	Report ReportCmd `cmd:"" help:"Print the aggregated report for a date."`
	Notify NotifyCmd `cmd:"" help:"Send standup reminders."`
	Token  TokenCmd  `cmd:"" help:"Mint a service token for the HTTP API."`
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	kctx := kong.Parse(&CLI,
		kong.Name("standupctl"),
		kong.Description("Operations companion for the standup service"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx, cleanup, err := buildContext(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildContext(cfg *config.Config) (*Context, func(), error) {
	cleanup := func() {}

	var repo standup.Repository
	switch cfg.Store.Backend {
	case config.BackendAirtable:
		repo = standup.NewAirtableRepo(cfg.Airtable.APIKey, cfg.Airtable.BaseID, cfg.Airtable.TableName)
	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
		defer cancel()
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("mongodb: %w", err)
		}
		cleanup = func() { _ = client.Disconnect(context.Background()) }
		repo = standup.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection("standups"))
	case config.BackendMemory:
		repo = standup.NewMemoryRepo()
	}

	var notifySvc *notify.Service
	var confirmer standup.Confirmer
	if !cfg.Slack.Disabled {
		sn := notify.NewSlackNotifier(cfg.Slack.APIToken, cfg.Slack.ScrumMasterEmail, nil)
		notifySvc = notify.NewService(sn)
		confirmer = sn
	}

	svc := standup.NewService(repo, confirmer, standup.ReportOptions{
		Roster:          cfg.Report.Roster,
		FoldBlockerCase: cfg.Report.FoldBlockerCase,
	})

	return &Context{Cfg: cfg, Svc: svc, NotifySvc: notifySvc}, cleanup, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
