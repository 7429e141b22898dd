package store

import (
	"context"
	"sync"
)

// Store is the durable key-value namespace shared by the app process and the
// widget process. Values are strings; typed encoding belongs to the caller.
// Absent keys are reported via the bool, never as an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error

	// RemoveIfRevision removes keys only while revKey still holds rev,
	// atomically with respect to other writers of the same store. It returns
	// false without removing anything when the revision has moved on. This is
	// the guard for the widget's cleanup-on-read: a record replaced between
	// the widget reading it and deciding it is stale must survive.
	RemoveIfRevision(ctx context.Context, revKey, rev string, keys ...string) (bool, error)
}

// Memory is an in-process Store used by tests and single-process runs.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *Memory) RemoveIfRevision(_ context.Context, revKey, rev string, keys ...string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[revKey] != rev {
		return false, nil
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	return true, nil
}
