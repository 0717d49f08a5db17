package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/momento/fulfillment/internal/application/scoring"
)

// ScoringScheduler runs the supplier reliability and product quality scoring
// jobs on a fixed interval. Both jobs share one tick: supplier scores feed
// the next routing decisions and the product kill switch runs right after.
type ScoringScheduler struct {
	suppliers *scoring.SupplierScoringService
	products  *scoring.ProductScoringService
	logger    *zap.Logger
	config    ScoringSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// ScoringSchedulerConfig holds configuration for the scoring scheduler
type ScoringSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval is the time between scoring runs
	Interval time.Duration

	// JobTimeout is the maximum time for one combined run
	JobTimeout time.Duration

	// RunOnStart triggers a run immediately when the scheduler starts
	RunOnStart bool
}

// DefaultScoringSchedulerConfig returns default configuration
func DefaultScoringSchedulerConfig() ScoringSchedulerConfig {
	return ScoringSchedulerConfig{
		Enabled:    true,
		Interval:   24 * time.Hour,
		JobTimeout: 10 * time.Minute,
		RunOnStart: false,
	}
}

// Validate checks the configuration
func (c ScoringSchedulerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Interval <= 0 || c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// NewScoringScheduler creates a new scoring scheduler
func NewScoringScheduler(
	suppliers *scoring.SupplierScoringService,
	products *scoring.ProductScoringService,
	logger *zap.Logger,
	config ScoringSchedulerConfig,
) *ScoringScheduler {
	return &ScoringScheduler{
		suppliers: suppliers,
		products:  products,
		logger:    logger,
		config:    config,
	}
}

// Start starts the scoring scheduler
func (s *ScoringScheduler) Start(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Scoring scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Scoring scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *ScoringScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scoring scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scoring scheduler stop timed out")
		return ctx.Err()
	}
}

// runLoop drives the interval ticker
func (s *ScoringScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.execute(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Scoring loop stopping")
			return
		case <-ticker.C:
			s.execute(ctx)
		}
	}
}

// execute runs both scoring jobs under one timeout. A supplier scoring
// failure does not stop the product run; the jobs are independent.
func (s *ScoringScheduler) execute(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	startTime := time.Now()

	supplierResult, err := s.suppliers.Run(runCtx)
	if err != nil {
		s.logger.Error("Supplier scoring run failed",
			zap.Duration("duration", time.Since(startTime)),
			zap.Error(err),
		)
	} else {
		s.logger.Info("Supplier scoring run completed",
			zap.Duration("duration", time.Since(startTime)),
			zap.Int("evaluated", supplierResult.Evaluated),
			zap.Int("updated", supplierResult.Updated),
		)
	}

	productStart := time.Now()
	productResult, err := s.products.Run(runCtx)
	if err != nil {
		s.logger.Error("Product scoring run failed",
			zap.Duration("duration", time.Since(productStart)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Product scoring run completed",
		zap.Duration("duration", time.Since(productStart)),
		zap.Int("evaluated", productResult.Evaluated),
		zap.Int("suppressed", productResult.Suppressed),
		zap.Int("restored", productResult.Restored),
	)
}

// TriggerImmediateRun triggers a scoring run outside the interval
func (s *ScoringScheduler) TriggerImmediateRun(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate scoring run")

	go func() {
		defer s.wg.Done()
		s.execute(ctx)
	}()

	return nil
}

// IsRunning returns whether the scheduler is running
func (s *ScoringScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
