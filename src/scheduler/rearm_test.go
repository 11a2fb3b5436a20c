package scheduler

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBareEngine() *Engine {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewEngine(nil, nil, nil, nil, logger)
}

func TestRearmDeclinesAfterCancelDuringFiring(t *testing.T) {
	e := newBareEngine()
	at := time.Date(2031, 1, 10, 9, 0, 0, 0, time.Local)

	// a firing is in flight when the cancel lands
	e.mu.Lock()
	e.inflight[5] = struct{}{}
	e.mu.Unlock()
	e.Cancel(5)

	assert.False(t, e.rearmAt(5, at))
	assert.Equal(t, 0, e.ActiveCount())
}

func TestRearmProceedsWithoutPendingCancel(t *testing.T) {
	e := newBareEngine()
	at := time.Date(2031, 1, 10, 9, 0, 0, 0, time.Local)

	assert.True(t, e.rearmAt(7, at))
	assert.Equal(t, 1, e.ActiveCount())
}

func TestClearInflightDropsCancelTombstone(t *testing.T) {
	e := newBareEngine()
	at := time.Date(2031, 1, 10, 9, 0, 0, 0, time.Local)

	e.mu.Lock()
	e.inflight[3] = struct{}{}
	e.mu.Unlock()
	e.Cancel(3)
	e.clearInflight(3)

	// with the firing fully over, a later arm is a fresh start
	assert.True(t, e.rearmAt(3, at))
	assert.Equal(t, 1, e.ActiveCount())
}
