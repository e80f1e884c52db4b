package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
	"github.com/oksasatya/go-identity-service/internal/domain/repository"
	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

const (
	uniqueViolation  = "23505"
	emailUniqueIndex = "users_email_key"
	userColumns      = `id::text, email, password_hash, first_name, last_name, created_at, updated_at, is_active, last_login_at`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var s entity.UserState
	if err := row.Scan(&s.ID, &s.Email, &s.Password, &s.FirstName, &s.LastName,
		&s.CreatedAt, &s.UpdatedAt, &s.IsActive, &s.LastLoginAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return entity.Restore(s), nil
}

// mapWriteErr turns a unique violation on the email index into the store's
// duplicate sentinel.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailUniqueIndex {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email vo.Email) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email.String())
	return scanUser(row)
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Add(ctx context.Context, u *entity.User) (*entity.User, error) {
	s := u.State()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, created_at, updated_at, is_active, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		s.ID, s.Email, s.Password, s.FirstName, s.LastName, s.CreatedAt, s.UpdatedAt, s.IsActive, s.LastLoginAt)

	saved, err := scanUser(row)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	s := u.State()
	if _, err := uuid.Parse(s.ID); err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
		    updated_at = $6, is_active = $7, last_login_at = $8
		WHERE id = $1
		RETURNING `+userColumns,
		s.ID, s.Email, s.Password, s.FirstName, s.LastName, s.UpdatedAt, s.IsActive, s.LastLoginAt)

	saved, err := scanUser(row)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return saved, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
