package signal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHandler_Signal_CancelsContextWithCause(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal()

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	require.ErrorIs(t, context.Cause(h.Context()), ErrInterrupted)
	assert.True(t, h.WasInterrupted())
}

func TestHandler_MultipleSignals_OnlyProcessedOnce(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal()
	h.handleSignal()
	h.handleSignal()

	select {
	case <-h.Interrupted():
	default:
		t.Fatal("interrupted channel should be closed")
	}
}

func TestHandler_Stop(t *testing.T) {
	h := NewHandler(context.Background())

	h.Stop()
	h.Stop()

	require.Error(t, h.Context().Err())
	assert.False(t, h.WasInterrupted(), "stopping is not an interruption")
	assert.ErrorIs(t, context.Cause(h.Context()), context.Canceled)
}

func TestHandler_ParentContextCanceled(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()

	require.Error(t, h.Context().Err())
	assert.False(t, h.WasInterrupted())
}

func TestHandler_InitialState(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, h.Context().Err())
	assert.False(t, h.WasInterrupted())
}

func TestHandler_ListenContinuesAfterSignal(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	// The second send blocks forever if listen() returned after the first.
	h.sigChan <- nil
	h.sigChan <- nil

	<-h.Interrupted()
	require.ErrorIs(t, context.Cause(h.Context()), ErrInterrupted)
}
