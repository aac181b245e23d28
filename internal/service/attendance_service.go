package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/rs/zerolog"
)

// Recording errors.
var (
	ErrInvalidEntry  = errors.New("invalid attendance entry")
	ErrAlreadyMarked = errors.New("attendance already marked for today")
)

// AttendanceStore is the persistence surface AttendanceService needs.
// *repository.AttendanceRepository satisfies it.
type AttendanceStore interface {
	ExistsOn(ctx context.Context, studentID, subjectID, slot int, day time.Time) (bool, error)
	InsertBatch(ctx context.Context, entries []model.AttendanceEntry, day time.Time) ([]model.Attendance, error)
}

// Broadcaster fans a recorded batch out to listeners (live feed,
// report-cache invalidation). Failures there must not fail the request.
type Broadcaster interface {
	BatchRecorded(ctx context.Context, batch []model.Attendance)
}

// AttendanceService records per-lecture attendance batches with a
// same-day duplicate guard.
type AttendanceService struct {
	store     AttendanceStore
	broadcast Broadcaster
	log       zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(store AttendanceStore, broadcast Broadcaster, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		store:     store,
		broadcast: broadcast,
		log:       log.With().Str("component", "attendance_service").Logger(),
	}
}

// Record persists an attendance batch. Entries already recorded today
// for the same (student, subject, slot) are dropped silently; if every
// entry is a duplicate the call fails with ErrAlreadyMarked. Surviving
// entries are inserted all-or-nothing.
func (s *AttendanceService) Record(ctx context.Context, entries []model.AttendanceEntry) ([]model.Attendance, error) {
	// Reject malformed entries before touching the store. Binding
	// already validates HTTP input; this guards non-HTTP callers.
	for _, e := range entries {
		if !e.Status.Valid() || e.Slot < 0 || e.StudentID <= 0 || e.SubjectID <= 0 {
			return nil, fmt.Errorf("%w: student=%d subject=%d status=%q slot=%d",
				ErrInvalidEntry, e.StudentID, e.SubjectID, e.Status, e.Slot)
		}
	}

	today := startOfDay(time.Now())

	fresh := make([]model.AttendanceEntry, 0, len(entries))
	for _, e := range entries {
		exists, err := s.store.ExistsOn(ctx, e.StudentID, e.SubjectID, e.Slot, today)
		if err != nil {
			return nil, fmt.Errorf("duplicate check: %w", err)
		}
		if !exists {
			fresh = append(fresh, e)
		}
	}

	if len(fresh) == 0 {
		return nil, ErrAlreadyMarked
	}

	inserted, err := s.store.InsertBatch(ctx, fresh, today)
	if err != nil {
		return nil, err
	}

	if dropped := len(entries) - len(fresh); dropped > 0 {
		s.log.Debug().Int("dropped", dropped).Msg("Duplicate entries filtered from batch")
	}

	if s.broadcast != nil {
		s.broadcast.BatchRecorded(ctx, inserted)
	}
	return inserted, nil
}

// startOfDay truncates t to midnight in the server's local time zone.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
