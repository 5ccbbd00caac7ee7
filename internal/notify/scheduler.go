package notify

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/standupbot/standup-services/pkg/logger"
)

// Scheduler sends the standup reminder to the configured roster on a cron
// schedule (e.g. "0 9 * * 1-5" for weekday mornings).
type Scheduler struct {
	cron   *cron.Cron
	svc    *Service
	roster []string
}

func NewScheduler(svc *Service, spec string, roster []string) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), svc: svc, roster: roster}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() { s.cron.Start() }
func (s *Scheduler) Stop()  { s.cron.Stop() }

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	date := time.Now().UTC().Format("2006-01-02")
	logger.Infof("sending scheduled standup reminders for %s to %d members", date, len(s.roster))
	for recipient, res := range s.svc.NotifyStandup(ctx, s.roster, "", date) {
		if !res.OK {
			logger.Warnf("reminder to %s failed: %s", recipient, res.Error)
		}
	}
}
