package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionSweeper purges expired sessions and returns their ids
type SessionSweeper interface {
	SweepExpiredSessions(ctx context.Context) ([]string, error)
}

// SchedulerService runs periodic maintenance jobs on a cron schedule
type SchedulerService struct {
	cron     *cron.Cron
	sweeper  SessionSweeper
	schedule string
	timeout  time.Duration
	mu       sync.Mutex
	running  bool
}

// NewSchedulerService creates a scheduler that sweeps sessions on the given cron schedule
func NewSchedulerService(sweeper SessionSweeper, schedule string) (*SchedulerService, error) {
	s := &SchedulerService{
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		sweeper:  sweeper,
		schedule: schedule,
		timeout:  30 * time.Second,
	}
	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return nil, fmt.Errorf("invalid session sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running jobs in the background
func (s *SchedulerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	log.Printf("⏰ Scheduler service starting (session sweep: %s)", s.schedule)
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	log.Println("⏰ Scheduler service stopping...")
	<-s.cron.Stop().Done()
	log.Println("⏰ Scheduler service stopped")
}

// RunNow executes the session sweep immediately
func (s *SchedulerService) RunNow(ctx context.Context) (int, error) {
	ids, err := s.sweeper.SweepExpiredSessions(ctx)
	return len(ids), err
}

func (s *SchedulerService) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.RunNow(ctx)
	if err != nil {
		log.Printf("❌ Session sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("🧹 Swept %d expired session(s)", n)
	}
}
