package repository

import (
	"context"
	"errors"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateAdmin = errors.New("admin with this username or email already exists")

// AdminRepository handles admin data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `id, username, email, password_hash, secret_key, is_verified, otp, otp_expires_at, created_at, updated_at`

// Create inserts a new admin in the unverified state.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admins (username, email, password_hash, secret_key, otp, otp_expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		a.Username, a.Email, a.PasswordHash, a.SecretKey, a.OTP, a.OTPExpiresAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdmin
		}
		return err
	}
	return nil
}

// GetByEmail retrieves an admin by email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = $1`, email,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.SecretKey, &a.IsVerified, &a.OTP, &a.OTPExpiresAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByIdentifier retrieves an admin by username or email.
func (r *AdminRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE username = $1 OR email = $1`, identifier,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.SecretKey, &a.IsVerified, &a.OTP, &a.OTPExpiresAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an admin by ID.
func (r *AdminRepository) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.SecretKey, &a.IsVerified, &a.OTP, &a.OTPExpiresAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// MarkVerified flags the admin verified and clears the OTP.
func (r *AdminRepository) MarkVerified(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins
		 SET is_verified = TRUE, otp = NULL, otp_expires_at = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`, id,
	)
	return err
}

// Delete removes an admin by ID. Used to discard pending signups whose
// OTP check failed.
func (r *AdminRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	return err
}
