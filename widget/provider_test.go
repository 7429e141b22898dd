package widget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offwork.app/offwork/core"
	"offwork.app/offwork/store"
	"offwork.app/offwork/utils"
)

func kst(hour, minute int) time.Time {
	return time.Date(2025, 7, 22, hour, minute, 0, 0, utils.ReferenceTZ)
}

func seedRecord(t *testing.T, st store.Store, end time.Time, workDate string) {
	t.Helper()
	start := end.Add(-9 * time.Hour)
	require.NoError(t, core.SaveRecord(context.Background(), st, core.Record{
		EndEpoch:  float64(end.Unix()),
		StartTime: &start,
		WorkDate:  workDate,
	}))
}

func TestStatusValidShift(t *testing.T) {
	st := store.NewMemory()
	seedRecord(t, st, kst(18, 0), "2025-07-22")

	p := NewProvider(st)
	status := p.Status(context.Background(), kst(10, 0))

	assert.True(t, status.Valid)
	assert.Equal(t, kst(18, 0).Unix(), status.EndTime.Unix())

	// A valid read never mutates the store
	rec := core.LoadRecord(context.Background(), st)
	assert.True(t, rec.HasData())
}

func TestStatusEmptyStore(t *testing.T) {
	st := store.NewMemory()
	p := NewProvider(st)

	status := p.Status(context.Background(), kst(10, 0))

	assert.False(t, status.Valid)
	assert.True(t, status.EndTime.IsZero())
}

func TestStatusCleansStaleRecord(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	seedRecord(t, st, kst(18, 0), "2025-07-21") // yesterday's shift

	p := NewProvider(st)
	status := p.Status(ctx, kst(10, 0))

	assert.False(t, status.Valid)

	rec := core.LoadRecord(ctx, st)
	assert.False(t, rec.HasData(), "stale record wiped on read")
}

func TestStatusCleanupSkippedWhenRecordReplaced(t *testing.T) {
	ctx := context.Background()
	seed := store.NewMemory()
	seedRecord(t, seed, kst(9, 0), "2025-07-22") // ended, stale by time

	// Interpose a store that simulates the app starting a new shift between
	// the widget's read and its cleanup write.
	fresh := kst(18, 0)
	racy := &racingStore{Memory: seed, onRemoveIf: func() {
		start := kst(9, 30)
		_ = core.SaveRecord(ctx, seed, core.Record{
			EndEpoch:  float64(fresh.Unix()),
			StartTime: &start,
			WorkDate:  "2025-07-22",
		})
	}}

	p := NewProvider(racy)
	status := p.Status(ctx, kst(10, 0))
	assert.False(t, status.Valid)

	// The just-started record survived the widget's cleanup
	rec := core.LoadRecord(ctx, seed)
	assert.Equal(t, float64(fresh.Unix()), rec.EndEpoch)
	assert.Equal(t, "2025-07-22", rec.WorkDate)
}

func TestNextRefresh(t *testing.T) {
	p := NewProvider(store.NewMemory())

	at, ok := p.NextRefresh(Status{EndTime: kst(18, 0), Valid: true})
	assert.True(t, ok)
	assert.Equal(t, kst(18, 1).Unix(), at.Unix())

	_, ok = p.NextRefresh(Status{EndTime: kst(18, 0), Valid: false})
	assert.False(t, ok)
}

func TestVariantAt(t *testing.T) {
	end := kst(18, 0)

	tests := []struct {
		name   string
		status Status
		now    time.Time
		want   Variant
	}{
		{name: "counting down", status: Status{EndTime: end, Valid: true}, now: kst(17, 0), want: VariantCounting},
		{name: "exactly at end", status: Status{EndTime: end, Valid: true}, now: end, want: VariantJustEnded},
		{name: "just ended", status: Status{EndTime: end}, now: kst(18, 30), want: VariantJustEnded},
		{name: "idle", status: Status{}, now: kst(18, 30), want: VariantIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VariantAt(tt.status, tt.now))
		})
	}
}

func TestRender(t *testing.T) {
	end := kst(18, 0)

	assert.Equal(t, "Off work in 01:30:00 (until 18:00)", Render(Status{EndTime: end, Valid: true}, kst(16, 30)))
	assert.Equal(t, "Off work!", Render(Status{EndTime: end}, kst(18, 5)))
	assert.Equal(t, "Not working", Render(Status{}, kst(18, 5)))
}

// racingStore runs a hook right before the guarded remove, mimicking a
// concurrent writer in the app process.
type racingStore struct {
	*store.Memory
	onRemoveIf func()
}

func (r *racingStore) RemoveIfRevision(ctx context.Context, revKey, rev string, keys ...string) (bool, error) {
	if r.onRemoveIf != nil {
		r.onRemoveIf()
		r.onRemoveIf = nil
	}
	return r.Memory.RemoveIfRevision(ctx, revKey, rev, keys...)
}
