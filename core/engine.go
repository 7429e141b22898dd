package core

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"offwork.app/offwork/notify"
	"offwork.app/offwork/store"
	"offwork.app/offwork/utils"
)

const (
	FullDayHours    = 8
	HalfDayHours    = 4
	LunchBreakHours = 1

	// A shift left open this long past its end is force-ended on validate.
	autoCleanupAfter = 4 * time.Hour

	overtimeNoticeDelay = 30 * time.Minute
)

// Config is the transient, user-entered shift setup. Only the time-of-day
// component of StartTime is meaningful; the date is normalized to "today"
// when the start is committed.
type Config struct {
	StartTime time.Time
	HalfDay   bool
}

// Duration is the stored shift span: 4h for a half day, otherwise 9h
// (8 worked + 1 lunch). Displays subtract the lunch hour; the store keeps
// the full 9.
func (c Config) Duration() time.Duration {
	if c.HalfDay {
		return HalfDayHours * time.Hour
	}
	return (FullDayHours + LunchBreakHours) * time.Hour
}

// WorkHoursLabel is the worked-hours text shown next to the toggle.
func (c Config) WorkHoursLabel() string {
	if c.HalfDay {
		return fmt.Sprintf("%dh", HalfDayHours)
	}
	return fmt.Sprintf("%dh", FullDayHours)
}

// Engine owns the shift state machine. It is the sole writer of the shared
// store in the app process; the widget provider only performs a guarded
// cleanup. All transitions and getters take an explicit now so the engine
// carries no clock or timer of its own.
type Engine struct {
	mu       sync.Mutex
	store    store.Store
	notifier notify.Scheduler

	working       bool
	startTime     *time.Time
	endEpoch      float64
	cleanupNotice bool
}

// NewEngine loads the persisted record and adopts it when it is still valid
// for today; stale non-zero data is proactively wiped.
func NewEngine(ctx context.Context, s store.Store, n notify.Scheduler, now time.Time) *Engine {
	e := &Engine{store: s, notifier: n}
	e.load(ctx, now)
	return e
}

func (e *Engine) load(ctx context.Context, now time.Time) {
	rec := LoadRecord(ctx, e.store)

	validDay := rec.WorkDate == utils.Today(now)
	timeValid := rec.EndEpoch > float64(now.Unix())

	e.endEpoch = rec.EndEpoch
	e.startTime = rec.StartTime
	e.working = rec.EndEpoch > 0 && validDay && timeValid

	if (!validDay || !timeValid) && rec.EndEpoch > 0 {
		e.cleanup(ctx)
	}
}

// cleanup wipes store and memory and cancels pending alerts. Callers hold
// the mutex (or are the constructor).
func (e *Engine) cleanup(ctx context.Context) {
	if err := ClearRecord(ctx, e.store); err != nil {
		log.Printf("failed to clear shift record: %v", err)
	}
	e.notifier.Cancel(notify.EndNotificationID, notify.OvertimeNotificationID)
	e.startTime = nil
	e.endEpoch = 0
	e.working = false
	e.cleanupNotice = true
}

// Start commits a shift: the configured time-of-day on today's date plus the
// configured duration. A start whose end is already in the past rolls both
// instants forward one day, preserving time-of-day; workDate stays today.
func (e *Engine) Start(ctx context.Context, cfg Config, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := utils.AtTimeOfDay(now, cfg.StartTime)
	end := start.Add(cfg.Duration())

	if !end.After(now) {
		start = start.AddDate(0, 0, 1)
		end = start.Add(cfg.Duration())
	}

	e.startTime = &start
	e.endEpoch = float64(end.Unix())

	rec := Record{EndEpoch: e.endEpoch, StartTime: &start, WorkDate: utils.Today(now)}
	if err := SaveRecord(ctx, e.store, rec); err != nil {
		// Best-effort: in-memory state stays authoritative for this process.
		log.Printf("failed to save shift record: %v", err)
	}

	e.scheduleAlerts(end, now)
	e.working = true
}

// End clears the shift. Calling it while idle is a no-op.
func (e *Engine) End(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endLocked(ctx)
}

func (e *Engine) endLocked(ctx context.Context) {
	if !e.working && e.endEpoch == 0 {
		return
	}

	e.startTime = nil
	e.endEpoch = 0
	e.working = false

	if err := ClearRecord(ctx, e.store); err != nil {
		log.Printf("failed to clear shift record: %v", err)
	}
	e.notifier.Cancel(notify.EndNotificationID, notify.OvertimeNotificationID)
}

// Validate runs on every foreground/appear event. A day rollover invalidates
// any shift; a shift more than the cleanup window past its end is ended
// automatically. Neither check fires while idle.
func (e *Engine) Validate(ctx context.Context, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.working {
		return
	}

	savedDate, _, err := e.store.Get(ctx, KeyWorkDate)
	if err != nil {
		log.Printf("failed to read %s: %v", KeyWorkDate, err)
	}
	if savedDate != utils.Today(now) {
		e.endLocked(ctx)
		return
	}

	if e.endEpoch > 0 && float64(now.Unix()) > e.endEpoch+autoCleanupAfter.Seconds() {
		log.Printf("shift end passed more than %v ago, ending automatically", autoCleanupAfter)
		e.endLocked(ctx)
	}
}

func (e *Engine) scheduleAlerts(end, now time.Time) {
	e.notifier.Cancel(notify.EndNotificationID, notify.OvertimeNotificationID)

	if !e.notifier.PermissionGranted() {
		return
	}
	if !end.After(now) {
		log.Printf("shift end %s is already in the past, skipping alerts", utils.FormatClock(end))
		return
	}

	if err := e.notifier.Schedule(notify.Notification{
		ID:     notify.EndNotificationID,
		Title:  "Shift over",
		Body:   "Time to head home. Good work today.",
		FireAt: end,
	}); err != nil {
		log.Printf("failed to schedule end-of-shift alert: %v", err)
	}

	overtimeAt := end.Add(overtimeNoticeDelay)
	if overtimeAt.After(now) {
		if err := e.notifier.Schedule(notify.Notification{
			ID:     notify.OvertimeNotificationID,
			Title:  "Still at work",
			Body:   "Your shift ended 30 minutes ago.",
			FireAt: overtimeAt,
		}); err != nil {
			log.Printf("failed to schedule overtime alert: %v", err)
		}
	}
}

// Progress is elapsed/total clamped to [0,1]; exactly 1 once now has reached
// the end instant. A corrupted record (start after end) clamps instead of
// dividing by a non-positive span.
func (e *Engine) Progress(now time.Time) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.working || e.startTime == nil {
		return 0
	}

	nowEpoch := float64(now.Unix())
	if nowEpoch >= e.endEpoch {
		return 1
	}

	startEpoch := float64(e.startTime.Unix())
	total := e.endEpoch - startEpoch
	if total <= 0 {
		return 1
	}
	return clamp01((nowEpoch - startEpoch) / total)
}

// IsOvertime reports whether the shift is past its end but not yet ended.
func (e *Engine) IsOvertime(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.working {
		return false
	}
	return float64(now.Unix()) > e.endEpoch
}

func (e *Engine) IsWorking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.working
}

// EndTime is the absolute shift end; zero value while idle.
func (e *Engine) EndTime() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.endEpoch <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(e.endEpoch), 0)
}

func (e *Engine) FormattedEndTime() string {
	end := e.EndTime()
	if end.IsZero() {
		return ""
	}
	return utils.FormatClock(end)
}

// WorkInfo is the one-line shift summary, e.g. "09:00 ~ 18:00 (8h)".
// A stored 9-hour span displays as 8 worked hours (unpaid lunch).
func (e *Engine) WorkInfo() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.working || e.startTime == nil {
		return ""
	}

	totalHours := int((e.endEpoch - float64(e.startTime.Unix())) / 3600)
	displayHours := totalHours
	if totalHours == FullDayHours+LunchBreakHours {
		displayHours = FullDayHours
	}

	end := time.Unix(int64(e.endEpoch), 0)
	return fmt.Sprintf("%s ~ %s (%dh)", utils.FormatClock(*e.startTime), utils.FormatClock(end), displayHours)
}

// PreviewEndTime shows where the shift would end if started with cfg now,
// without the past-start rollover (previews always read as today).
func (e *Engine) PreviewEndTime(cfg Config, now time.Time) string {
	start := utils.AtTimeOfDay(now, cfg.StartTime)
	return utils.FormatClock(start.Add(cfg.Duration()))
}

// ConsumeCleanupNotice returns and resets the one-shot advisory flag set
// when stale persisted data was wiped.
func (e *Engine) ConsumeCleanupNotice() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.cleanupNotice
	e.cleanupNotice = false
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
