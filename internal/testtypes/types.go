// Package testtypes provides service and decorator types used in tests.
package testtypes

import (
	"context"
	"sync"
)

// CloseRecorder records the order in which test services are closed.
// Safe for concurrent use.
type CloseRecorder struct {
	mu     sync.Mutex
	closed []string
}

func (r *CloseRecorder) Record(label string) {
	r.mu.Lock()
	r.closed = append(r.closed, label)
	r.mu.Unlock()
}

// Closed returns the recorded labels in close order.
func (r *CloseRecorder) Closed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.closed...)
}

// Count returns how many times label was recorded.
func (r *CloseRecorder) Count(label string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, l := range r.closed {
		if l == label {
			n++
		}
	}
	return n
}

// Store is the service interface decorated in tests.
type Store interface {
	Get(key string) string
}

// BaseStore is the innermost Store. It uses the plain Close signature.
type BaseStore struct {
	Recorder *CloseRecorder
}

func (s *BaseStore) Get(key string) string { return key }

func (s *BaseStore) Close() {
	if s.Recorder != nil {
		s.Recorder.Record("base")
	}
}

// PrefixStore decorates a Store by prefixing every value with Label.
// It uses the Close(ctx) error signature and records Label on close.
type PrefixStore struct {
	Label    string
	Inner    Store
	Recorder *CloseRecorder
}

func (s *PrefixStore) Get(key string) string {
	return s.Label + ":" + s.Inner.Get(key)
}

func (s *PrefixStore) Close(context.Context) error {
	if s.Recorder != nil {
		s.Recorder.Record(s.Label)
	}
	return nil
}

// PlainStore is a Store without any Close method.
type PlainStore struct{}

func (PlainStore) Get(key string) string { return key }

// FailCloser returns Err from Close and records its label.
type FailCloser struct {
	Label    string
	Err      error
	Recorder *CloseRecorder
}

func (c *FailCloser) Close() error {
	if c.Recorder != nil {
		c.Recorder.Record(c.Label)
	}
	return c.Err
}

// PanicCloser panics on Close.
type PanicCloser struct{}

func (PanicCloser) Close() { panic("close") }
