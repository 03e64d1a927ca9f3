package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/simaogato/wealthtrack-backend/internal/usecase/investment"
)

// PriceRefresher is satisfied by *investment.InvestmentService
type PriceRefresher interface {
	RefreshPrices(ctx context.Context, ownerID uuid.UUID) (*investment.RefreshReport, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher PriceRefresher
	Owners    []uuid.UUID
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Cron expressions use the six-field format with seconds.
func NewScheduler(ctx context.Context, refresher PriceRefresher, owners []uuid.UUID) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: refresher,
		Owners:    owners,
		Ctx:       ctx,
	}
}

// Register adds the price refresh task on the given cron expression.
func (s *Scheduler) Register(priceRefreshCron string) error {
	if _, err := s.Cron.AddFunc(priceRefreshCron, s.RefreshNow); err != nil {
		return fmt.Errorf("register price refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RefreshNow refreshes prices for every configured owner.
// One owner failing does not stop the others.
func (s *Scheduler) RefreshNow() {
	for _, ownerID := range s.Owners {
		if s.Ctx.Err() != nil {
			return
		}

		report, err := s.Refresher.RefreshPrices(s.Ctx, ownerID)
		if err != nil {
			log.Printf("[ERROR] price refresh for owner %s: %v", ownerID, err)
			continue
		}
		log.Printf("[INFO] price refresh for owner %s: %d updated, %d failed", ownerID, report.Updated, len(report.Failed))
	}
}
