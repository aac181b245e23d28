package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateAttendance = errors.New("attendance already recorded for this student, subject and slot today")

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// ExistsOn reports whether a record for (studentID, subjectID, slot)
// already exists on the given calendar day.
func (r *AttendanceRepository) ExistsOn(ctx context.Context, studentID, subjectID, slot int, day time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM attendances
		   WHERE student_id = $1 AND subject_id = $2 AND slot = $3 AND marked_on = $4
		 )`,
		studentID, subjectID, slot, day,
	).Scan(&exists)
	return exists, err
}

// InsertBatch writes all entries inside one transaction, stamped with
// the given calendar day. The batch is all-or-nothing: any failure,
// including a lost duplicate race caught by the unique index, aborts
// every row.
func (r *AttendanceRepository) InsertBatch(ctx context.Context, entries []model.AttendanceEntry, day time.Time) ([]model.Attendance, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inserted := make([]model.Attendance, 0, len(entries))
	for _, e := range entries {
		a := model.Attendance{
			StudentID: e.StudentID,
			SubjectID: e.SubjectID,
			Status:    e.Status,
			Slot:      e.Slot,
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO attendances (student_id, subject_id, status, slot, marked_on)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, marked_on, created_at`,
			e.StudentID, e.SubjectID, e.Status, e.Slot, day,
		).Scan(&a.ID, &a.MarkedOn, &a.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, ErrDuplicateAttendance
			}
			return nil, err
		}
		inserted = append(inserted, a)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return inserted, nil
}

// ListByStudentIDs returns every attendance record for the given
// students, oldest first.
func (r *AttendanceRepository) ListByStudentIDs(ctx context.Context, studentIDs []int) ([]model.Attendance, error) {
	if len(studentIDs) == 0 {
		return []model.Attendance{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, subject_id, status, slot, marked_on, created_at
		 FROM attendances
		 WHERE student_id = ANY($1)
		 ORDER BY created_at`,
		studentIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.SubjectID, &a.Status, &a.Slot, &a.MarkedOn, &a.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
