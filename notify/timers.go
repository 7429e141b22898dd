package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Sender delivers a fired notification somewhere a person will see it.
type Sender interface {
	Deliver(n Notification) error
	// Probe checks whether delivery is possible at all; its result is the
	// "permission granted" boolean.
	Probe(ctx context.Context) error
}

// Timers schedules alerts on in-process one-shot timers and hands fired ones
// to a Sender. Delivery errors are logged, never returned to the transition
// that scheduled them.
type Timers struct {
	mu      sync.Mutex
	sender  Sender
	timers  map[string]*time.Timer
	granted bool
}

func NewTimers(ctx context.Context, sender Sender) *Timers {
	t := &Timers{sender: sender, timers: make(map[string]*time.Timer)}
	if _, err := t.RequestPermission(ctx); err != nil {
		log.Printf("notification delivery unavailable: %v", err)
	}
	return t
}

func (t *Timers) Schedule(n Notification) error {
	d := time.Until(n.FireAt)
	if d <= 0 {
		return fmt.Errorf("fire instant %s already passed", n.FireAt)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.timers[n.ID]; ok {
		prev.Stop()
	}
	t.timers[n.ID] = time.AfterFunc(d, func() {
		t.mu.Lock()
		delete(t.timers, n.ID)
		t.mu.Unlock()

		if err := t.sender.Deliver(n); err != nil {
			log.Printf("failed to deliver notification %s: %v", n.ID, err)
		}
	})
	return nil
}

func (t *Timers) Cancel(ids ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range ids {
		if timer, ok := t.timers[id]; ok {
			timer.Stop()
			delete(t.timers, id)
		}
	}
}

func (t *Timers) PermissionGranted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.granted
}

func (t *Timers) RequestPermission(ctx context.Context) (bool, error) {
	err := t.sender.Probe(ctx)

	t.mu.Lock()
	t.granted = err == nil
	granted := t.granted
	t.mu.Unlock()

	return granted, err
}

// Pending reports whether an alert is currently scheduled under id.
func (t *Timers) Pending(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.timers[id]
	return ok
}
