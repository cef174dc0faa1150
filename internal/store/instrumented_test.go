package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	viewErr   error
	updateErr error
}

func (s *stubStore) View(ctx context.Context, fn TxFunc) error {
	if s.viewErr != nil {
		return s.viewErr
	}
	return fn(&State{})
}

func (s *stubStore) Update(ctx context.Context, fn TxFunc) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	return fn(&State{})
}

func (s *stubStore) Close() error { return nil }

type recordingObserver struct {
	ops []string
}

func (r *recordingObserver) ObserveStoreOp(operation string, _ time.Duration) {
	r.ops = append(r.ops, operation)
}

func TestInstrumentReportsViewAndUpdate(t *testing.T) {
	obs := &recordingObserver{}
	st := Instrument(&stubStore{}, obs)

	require.NoError(t, st.View(context.Background(), func(*State) error { return nil }))
	require.NoError(t, st.Update(context.Background(), func(*State) error { return nil }))

	assert.Equal(t, []string{"view", "update"}, obs.ops)
}

func TestInstrumentReportsFailedOperations(t *testing.T) {
	boom := errors.New("boom")
	obs := &recordingObserver{}
	st := Instrument(&stubStore{updateErr: boom}, obs)

	err := st.Update(context.Background(), func(*State) error { return nil })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"update"}, obs.ops)
}

func TestInstrumentWithoutObserverReturnsInner(t *testing.T) {
	inner := &stubStore{}
	assert.Equal(t, Store(inner), Instrument(inner, nil))
}
