package repository

import (
	"context"
	"errors"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateFaculty = errors.New("faculty with this email already exists")

// FacultyRepository handles faculty data access.
type FacultyRepository struct {
	pool *pgxpool.Pool
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(pool *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{pool: pool}
}

// Create inserts a new faculty account.
func (r *FacultyRepository) Create(ctx context.Context, f *model.Faculty) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO faculties (email, password_hash, first_name, last_name, subjects, subject_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		f.Email, f.PasswordHash, f.FirstName, f.LastName, f.Subjects, f.SubjectID,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateFaculty
		}
		return err
	}
	return nil
}

// GetByEmail retrieves a faculty by email.
func (r *FacultyRepository) GetByEmail(ctx context.Context, email string) (*model.Faculty, error) {
	f := &model.Faculty{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, subjects, subject_id, created_at, updated_at
		 FROM faculties WHERE email = $1`, email,
	).Scan(&f.ID, &f.Email, &f.PasswordHash, &f.FirstName, &f.LastName, &f.Subjects, &f.SubjectID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// GetByID retrieves a faculty by ID.
func (r *FacultyRepository) GetByID(ctx context.Context, id int) (*model.Faculty, error) {
	f := &model.Faculty{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, subjects, subject_id, created_at, updated_at
		 FROM faculties WHERE id = $1`, id,
	).Scan(&f.ID, &f.Email, &f.PasswordHash, &f.FirstName, &f.LastName, &f.Subjects, &f.SubjectID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListWithSubjectName returns all faculties joined to their primary
// subject name, ordered by last name. The admin listing groups on the
// subject name in memory.
func (r *FacultyRepository) ListWithSubjectName(ctx context.Context) ([]model.Faculty, []string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.email, f.password_hash, f.first_name, f.last_name, f.subjects, f.subject_id,
		        f.created_at, f.updated_at, s.name
		 FROM faculties f
		 JOIN subjects s ON s.id = f.subject_id
		 ORDER BY f.last_name, f.first_name`,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var faculties []model.Faculty
	var subjectNames []string
	for rows.Next() {
		var f model.Faculty
		var subjectName string
		if err := rows.Scan(&f.ID, &f.Email, &f.PasswordHash, &f.FirstName, &f.LastName, &f.Subjects,
			&f.SubjectID, &f.CreatedAt, &f.UpdatedAt, &subjectName); err != nil {
			return nil, nil, err
		}
		faculties = append(faculties, f)
		subjectNames = append(subjectNames, subjectName)
	}
	return faculties, subjectNames, rows.Err()
}
