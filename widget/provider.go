package widget

import (
	"context"
	"fmt"
	"log"
	"time"

	"offwork.app/offwork/core"
	"offwork.app/offwork/store"
	"offwork.app/offwork/utils"
)

// Status is one snapshot read of the shared store.
type Status struct {
	EndTime time.Time
	Valid   bool
}

type Variant int

const (
	VariantIdle Variant = iota
	VariantCounting
	VariantJustEnded
)

// Provider is the widget process's read path. It shares nothing with the app
// engine except the store, and its only permitted write is the guarded
// cleanup of a record it has judged stale.
type Provider struct {
	store store.Store
}

func NewProvider(s store.Store) *Provider {
	return &Provider{store: s}
}

// Status reads the record and applies the engine's validity rules. Stale
// non-zero data is wiped, but only while the revision read here is still
// current: an app process starting a new shift in between wins, and the
// cleanup silently becomes a no-op.
func (p *Provider) Status(ctx context.Context, now time.Time) Status {
	rec := core.LoadRecord(ctx, p.store)

	if rec.ValidFor(now) {
		return Status{EndTime: time.Unix(int64(rec.EndEpoch), 0), Valid: true}
	}

	if rec.HasData() {
		removed, err := core.ClearRecordIfRevision(ctx, p.store, rec.Revision)
		if err != nil {
			log.Printf("failed to clean stale shift record: %v", err)
		} else if !removed {
			log.Printf("stale shift record replaced before cleanup, leaving it")
		}
	}

	var end time.Time
	if rec.EndEpoch > 0 {
		end = time.Unix(int64(rec.EndEpoch), 0)
	}
	return Status{EndTime: end, Valid: false}
}

// NextRefresh is the one-shot re-read instant: a minute past the end for a
// running shift (the render layer ticks on its own below that), nothing for
// an invalid snapshot until an external refresh trigger.
func (p *Provider) NextRefresh(st Status) (time.Time, bool) {
	if !st.Valid {
		return time.Time{}, false
	}
	return st.EndTime.Add(time.Minute), true
}

// VariantAt keys off now < end re-evaluated at render time, not off the
// cached validity.
func VariantAt(st Status, now time.Time) Variant {
	if st.EndTime.IsZero() {
		return VariantIdle
	}
	if now.Before(st.EndTime) {
		return VariantCounting
	}
	return VariantJustEnded
}

// Render produces the snapshot text for the widget binary.
func Render(st Status, now time.Time) string {
	switch VariantAt(st, now) {
	case VariantCounting:
		remaining := st.EndTime.Sub(now)
		return fmt.Sprintf("Off work in %s (until %s)", formatRemaining(remaining), utils.FormatClock(st.EndTime))
	case VariantJustEnded:
		return "Off work!"
	default:
		return "Not working"
	}
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
