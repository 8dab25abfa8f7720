package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

// RefreshScheduler periodically force-refreshes the entities every dashboard
// visitor loads: the market snapshot and the three IPO lists.
type RefreshScheduler struct {
	svc      *MarketDataService
	cron     *cron.Cron
	timeout  time.Duration
	schedule string
}

// NewRefreshScheduler parses the cron schedule (with a leading seconds field)
// and registers the warm job. The scheduler does nothing until Start is called.
func NewRefreshScheduler(svc *MarketDataService, schedule string, timeout time.Duration) (*RefreshScheduler, error) {
	s := &RefreshScheduler{
		svc:      svc,
		cron:     cron.New(cron.WithSeconds()),
		timeout:  timeout,
		schedule: schedule,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running the job in the background.
func (s *RefreshScheduler) Start() {
	log.Printf("Refresh scheduler started with schedule %q", s.schedule)
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish or ctx to expire.
func (s *RefreshScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Printf("Refresh scheduler stop timed out: %v", ctx.Err())
	}
}

func (s *RefreshScheduler) run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := Warm(ctx, s.svc); err != nil {
		log.Printf("Scheduled refresh finished with errors: %v", err)
	}
}

// Warm force-refreshes the market snapshot and every IPO list concurrently.
// All jobs run to completion; the first error is returned.
func Warm(ctx context.Context, svc *MarketDataService) error {
	var g errgroup.Group

	g.Go(func() error {
		if _, err := svc.GetMarketSnapshot(ctx, true); err != nil {
			return fmt.Errorf("market snapshot: %w", err)
		}
		return nil
	})

	for _, category := range model.IPOCategories {
		category := category
		g.Go(func() error {
			if _, err := svc.GetIPOList(ctx, category, true); err != nil {
				return fmt.Errorf("ipo list %s: %w", category, err)
			}
			return nil
		})
	}

	return g.Wait()
}
