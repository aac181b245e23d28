package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/rs/zerolog"
)

// fakeAttendanceStore records inserts in memory, keyed the same way the
// database unique index is.
type fakeAttendanceStore struct {
	existing   map[string]bool
	inserted   [][]model.AttendanceEntry
	existsErr  error
	insertErr  error
	nextID     int
	insertDays []time.Time
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{existing: make(map[string]bool)}
}

func dupKey(studentID, subjectID, slot int, day time.Time) string {
	return fmt.Sprintf("%d:%d:%d:%s", studentID, subjectID, slot, day.Format("2006-01-02"))
}

func (f *fakeAttendanceStore) ExistsOn(_ context.Context, studentID, subjectID, slot int, day time.Time) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[dupKey(studentID, subjectID, slot, day)], nil
}

func (f *fakeAttendanceStore) InsertBatch(_ context.Context, entries []model.AttendanceEntry, day time.Time) ([]model.Attendance, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, entries)
	f.insertDays = append(f.insertDays, day)
	out := make([]model.Attendance, 0, len(entries))
	for _, e := range entries {
		f.existing[dupKey(e.StudentID, e.SubjectID, e.Slot, day)] = true
		f.nextID++
		out = append(out, model.Attendance{
			ID:        f.nextID,
			StudentID: e.StudentID,
			SubjectID: e.SubjectID,
			Status:    e.Status,
			Slot:      e.Slot,
			MarkedOn:  day,
		})
	}
	return out, nil
}

type fakeBroadcaster struct {
	batches [][]model.Attendance
}

func (f *fakeBroadcaster) BatchRecorded(_ context.Context, batch []model.Attendance) {
	f.batches = append(f.batches, batch)
}

func entry(studentID, subjectID int, status model.AttendanceStatus, slot int) model.AttendanceEntry {
	return model.AttendanceEntry{StudentID: studentID, SubjectID: subjectID, Status: status, Slot: slot}
}

func TestRecordInsertsFullBatch(t *testing.T) {
	store := newFakeAttendanceStore()
	broadcast := &fakeBroadcaster{}
	svc := NewAttendanceService(store, broadcast, zerolog.Nop())

	batch := []model.AttendanceEntry{
		entry(1, 10, model.StatusPresent, 1),
		entry(2, 10, model.StatusAbsent, 1),
		entry(3, 10, model.StatusPresent, 1),
	}

	records, err := svc.Record(context.Background(), batch)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if len(store.inserted) != 1 || len(store.inserted[0]) != 3 {
		t.Fatalf("expected one insert of 3 entries, got %+v", store.inserted)
	}
	if len(broadcast.batches) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(broadcast.batches))
	}

	// Records carry the local calendar day, not the submission instant.
	wantDay := time.Now()
	for _, rec := range records {
		y1, m1, d1 := rec.MarkedOn.Date()
		y2, m2, d2 := wantDay.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			t.Errorf("marked_on = %v, want today", rec.MarkedOn)
		}
		if h := rec.MarkedOn.Hour(); h != 0 {
			t.Errorf("marked_on not truncated to midnight: %v", rec.MarkedOn)
		}
	}
}

func TestRecordRejectsFullDuplicateBatch(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := NewAttendanceService(store, nil, zerolog.Nop())

	batch := []model.AttendanceEntry{
		entry(1, 10, model.StatusPresent, 1),
		entry(2, 10, model.StatusAbsent, 1),
	}

	if _, err := svc.Record(context.Background(), batch); err != nil {
		t.Fatalf("first Record: %v", err)
	}

	_, err := svc.Record(context.Background(), batch)
	if !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("second Record: got %v, want ErrAlreadyMarked", err)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("duplicate batch reached the store: %d inserts", len(store.inserted))
	}
}

func TestRecordFiltersPartialDuplicates(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := NewAttendanceService(store, nil, zerolog.Nop())

	first := []model.AttendanceEntry{entry(1, 10, model.StatusPresent, 1)}
	if _, err := svc.Record(context.Background(), first); err != nil {
		t.Fatalf("first Record: %v", err)
	}

	second := []model.AttendanceEntry{
		entry(1, 10, model.StatusPresent, 1), // duplicate of first
		entry(2, 10, model.StatusPresent, 1),
	}
	records, err := svc.Record(context.Background(), second)
	if err != nil {
		t.Fatalf("second Record: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(records))
	}
	if records[0].StudentID != 2 {
		t.Errorf("wrong entry survived: %+v", records[0])
	}
}

func TestRecordSameSubjectDifferentSlots(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := NewAttendanceService(store, nil, zerolog.Nop())

	if _, err := svc.Record(context.Background(), []model.AttendanceEntry{entry(1, 10, model.StatusPresent, 1)}); err != nil {
		t.Fatalf("slot 1: %v", err)
	}
	// A second lecture of the same subject on the same day is a new slot.
	records, err := svc.Record(context.Background(), []model.AttendanceEntry{entry(1, 10, model.StatusAbsent, 2)})
	if err != nil {
		t.Fatalf("slot 2: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected slot 2 record, got %d records", len(records))
	}
}

func TestRecordRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		name  string
		entry model.AttendanceEntry
	}{
		{"unknown status", entry(1, 10, "late", 1)},
		{"empty status", entry(1, 10, "", 1)},
		{"negative slot", entry(1, 10, model.StatusPresent, -1)},
		{"zero student", entry(0, 10, model.StatusPresent, 1)},
		{"zero subject", entry(1, 0, model.StatusPresent, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeAttendanceStore()
			svc := NewAttendanceService(store, nil, zerolog.Nop())

			_, err := svc.Record(context.Background(), []model.AttendanceEntry{tc.entry})
			if !errors.Is(err, ErrInvalidEntry) {
				t.Fatalf("got %v, want ErrInvalidEntry", err)
			}
			if len(store.inserted) != 0 {
				t.Fatal("invalid entry reached the store")
			}
		})
	}
}

func TestRecordPropagatesStoreErrors(t *testing.T) {
	store := newFakeAttendanceStore()
	store.insertErr = errors.New("connection reset")
	svc := NewAttendanceService(store, nil, zerolog.Nop())

	_, err := svc.Record(context.Background(), []model.AttendanceEntry{entry(1, 10, model.StatusPresent, 1)})
	if err == nil || errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("got %v, want store error", err)
	}
}
