package core

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"offwork.app/offwork/store"
	"offwork.app/offwork/utils"
)

// Logical keys of the shared namespace. Both processes address the store
// through these.
const (
	KeyEndTime   = "workEndTime"
	KeyStartTime = "workStartTime"
	KeyWorkDate  = "workDate"
	KeyRevision  = "workRevision"
)

// RecordKeys lists every key a shift record occupies in the store.
var RecordKeys = []string{KeyEndTime, KeyStartTime, KeyWorkDate, KeyRevision}

// Record is the persisted shift state, the single source of truth for
// "is a shift active". EndEpoch of 0 (or absent) means no shift regardless
// of the other fields.
type Record struct {
	EndEpoch  float64
	StartTime *time.Time
	WorkDate  string
	// Revision changes on every save. Guarded cleanup deletes the record
	// only while the revision it read is still current.
	Revision string
}

// HasData reports whether any non-zero shift data is persisted, valid or not.
func (r Record) HasData() bool {
	return r.EndEpoch > 0 || r.StartTime != nil || r.WorkDate != ""
}

// ValidFor reports whether the record describes a shift that is still
// running at now: created today (reference timezone) and not yet past end.
func (r Record) ValidFor(now time.Time) bool {
	return r.EndEpoch > 0 &&
		r.WorkDate == utils.Today(now) &&
		r.EndEpoch > float64(now.Unix())
}

// LoadRecord reads the record from the store. Absent or unparseable values
// resolve to zero fields; read failures are logged and treated as absent.
func LoadRecord(ctx context.Context, s store.Store) Record {
	var rec Record

	if v, ok, err := s.Get(ctx, KeyEndTime); err != nil {
		log.Printf("failed to read %s: %v", KeyEndTime, err)
	} else if ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			rec.EndEpoch = f
		}
	}

	if v, ok, err := s.Get(ctx, KeyStartTime); err != nil {
		log.Printf("failed to read %s: %v", KeyStartTime, err)
	} else if ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			rec.StartTime = &t
		}
	}

	if v, ok, err := s.Get(ctx, KeyWorkDate); err != nil {
		log.Printf("failed to read %s: %v", KeyWorkDate, err)
	} else if ok {
		rec.WorkDate = v
	}

	if v, ok, err := s.Get(ctx, KeyRevision); err != nil {
		log.Printf("failed to read %s: %v", KeyRevision, err)
	} else if ok {
		rec.Revision = v
	}

	return rec
}

// SaveRecord persists the record under a fresh revision token.
func SaveRecord(ctx context.Context, s store.Store, rec Record) error {
	if err := s.Set(ctx, KeyEndTime, strconv.FormatFloat(rec.EndEpoch, 'f', -1, 64)); err != nil {
		return err
	}
	if rec.StartTime != nil {
		if err := s.Set(ctx, KeyStartTime, rec.StartTime.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if err := s.Set(ctx, KeyWorkDate, rec.WorkDate); err != nil {
		return err
	}
	return s.Set(ctx, KeyRevision, uuid.NewString())
}

// ClearRecord zeroes the record: end becomes 0, the rest is removed.
func ClearRecord(ctx context.Context, s store.Store) error {
	if err := s.Set(ctx, KeyEndTime, "0"); err != nil {
		return err
	}
	return s.Remove(ctx, KeyStartTime, KeyWorkDate, KeyRevision)
}

// ClearRecordIfRevision removes the whole record only while rev is still the
// stored revision. Used by the widget's cleanup-on-read.
func ClearRecordIfRevision(ctx context.Context, s store.Store, rev string) (bool, error) {
	return s.RemoveIfRevision(ctx, KeyRevision, rev, RecordKeys...)
}
