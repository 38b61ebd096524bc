package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingAuth struct {
	calls atomic.Int32
	err   error
}

func (c *countingAuth) EnsureAuthenticated(context.Context) (bool, error) {
	c.calls.Add(1)
	return c.err == nil, c.err
}

func TestScheduler_KeepAlive(t *testing.T) {
	auth := &countingAuth{}
	s := NewScheduler(auth, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return auth.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	stopped := auth.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, auth.calls.Load())
}

func TestScheduler_KeepsRunningAfterErrors(t *testing.T) {
	auth := &countingAuth{err: errors.New("portal down")}
	s := NewScheduler(auth, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return auth.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_Disabled(t *testing.T) {
	auth := &countingAuth{}
	s := NewScheduler(auth, 0, zap.NewNop())

	s.Start(context.Background())
	s.Stop()
	assert.Zero(t, auth.calls.Load())
}

func TestScheduler_ContextCancel(t *testing.T) {
	auth := &countingAuth{}
	s := NewScheduler(auth, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()
	s.Stop()
	assert.Equal(t, int32(1), auth.calls.Load())
}
