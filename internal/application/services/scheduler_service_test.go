package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	ids   []string
	err   error
	calls int
}

func (f *fakeSweeper) SweepExpiredSessions(ctx context.Context) ([]string, error) {
	f.calls++
	return f.ids, f.err
}

func TestNewSchedulerService_InvalidSchedule(t *testing.T) {
	_, err := NewSchedulerService(&fakeSweeper{}, "every now and then")
	assert.Error(t, err)
}

func TestSchedulerService_RunNow(t *testing.T) {
	sweeper := &fakeSweeper{ids: []string{"a", "b"}}
	s, err := NewSchedulerService(sweeper, "@every 1h")
	require.NoError(t, err)

	n, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sweeper.err = fmt.Errorf("db down")
	_, err = s.RunNow(context.Background())
	assert.Error(t, err)

	s.runSweep()
	assert.Equal(t, 3, sweeper.calls)
}

func TestSchedulerService_StartStopIdempotent(t *testing.T) {
	s, err := NewSchedulerService(&fakeSweeper{}, "@every 1h")
	require.NoError(t, err)

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
}

func TestNewServiceManager_Wiring(t *testing.T) {
	_, err := NewServiceManager(nil, ManagerOptions{})
	assert.Error(t, err)

	sm, store := newTestManager(t)
	assert.Same(t, store, sm.Store())
	assert.Nil(t, sm.Scheduler)
}
