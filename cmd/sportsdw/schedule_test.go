package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/sports-dw/internal/platform/logging"
)

const yearly = "0 0 1 1 *"

func TestSyncSchedulerRejectsBadExpression(t *testing.T) {
	_, err := newSyncScheduler("every tuesday", func() {}, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parse schedule "every tuesday"`)
}

func TestSyncSchedulerRunNowDoesNotOverlap(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	s, err := newSyncScheduler(yearly, func() {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
	}, logging.NewNop())
	require.NoError(t, err)
	s.Start()

	s.RunNow()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("run-now job did not start")
	}

	// A tick arriving while the first run is in flight is skipped.
	s.cron.Entry(s.id).WrappedJob.Run()

	close(release)
	s.Stop()
	assert.Equal(t, int32(1), calls.Load())
}

func TestSyncSchedulerStopWaitsForRunNow(t *testing.T) {
	var finished atomic.Bool
	s, err := newSyncScheduler(yearly, func() {
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	}, logging.NewNop())
	require.NoError(t, err)
	s.Start()

	s.RunNow()
	s.Stop()
	assert.True(t, finished.Load())
}

func TestSyncSchedulerRecoversPanics(t *testing.T) {
	var calls atomic.Int32
	s, err := newSyncScheduler(yearly, func() {
		calls.Add(1)
		panic("boom")
	}, logging.NewNop())
	require.NoError(t, err)
	s.Start()

	s.RunNow()
	s.Stop()

	// The skip guard is released after a panic.
	s.cron.Entry(s.id).WrappedJob.Run()
	assert.Equal(t, int32(2), calls.Load())
}
