package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/service/records"
)

// systemIdentity is the synthetic actor for scheduled maintenance. UserID 0
// never collides with a seeded account.
var systemIdentity = domain.Identity{UserID: 0, Username: "system", Role: domain.RoleAdmin}

// StartSweepScheduler runs the re-anonymization sweep on the given cron
// schedule. Returns nil when schedule is empty (scheduling disabled).
// The caller owns the returned cron and must Stop it on shutdown.
func StartSweepScheduler(schedule string, recordsSvc *records.Service, logger *slog.Logger) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx := domain.WithIdentity(context.Background(), systemIdentity)
		count, err := recordsSvc.RefreshAnonymizedFields(ctx)
		if err != nil {
			logger.Error("scheduled re-anonymization sweep failed", "error", err)
			return
		}
		logger.Info("scheduled re-anonymization sweep complete", "records", count)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("re-anonymization sweep scheduled", "schedule", schedule)
	return c, nil
}
