package store

import (
	"context"
	"time"
)

// OpObserver receives the duration of each store operation.
type OpObserver interface {
	ObserveStoreOp(operation string, duration time.Duration)
}

type instrumentedStore struct {
	inner Store
	obs   OpObserver
}

// Instrument wraps a Store so every View and Update reports its duration to
// the observer.
func Instrument(s Store, obs OpObserver) Store {
	if obs == nil {
		return s
	}
	return &instrumentedStore{inner: s, obs: obs}
}

func (s *instrumentedStore) View(ctx context.Context, fn TxFunc) error {
	start := time.Now()
	err := s.inner.View(ctx, fn)
	s.obs.ObserveStoreOp("view", time.Since(start))
	return err
}

func (s *instrumentedStore) Update(ctx context.Context, fn TxFunc) error {
	start := time.Now()
	err := s.inner.Update(ctx, fn)
	s.obs.ObserveStoreOp("update", time.Since(start))
	return err
}

func (s *instrumentedStore) Close() error {
	return s.inner.Close()
}
