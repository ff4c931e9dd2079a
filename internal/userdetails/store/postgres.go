package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjza/mra-core-sub001/internal/userdetails/models"
	"github.com/mjza/mra-core-sub001/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Create relies on the user_details unique constraint so concurrent creates
// for the same user resolve to exactly one winner.
func (s *Postgres) Create(ctx context.Context, d *models.UserDetails) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_details
			(user_id, first_name, middle_name, last_name, display_name, email,
			 date_of_birth, gender_id, profile_picture_url, creator, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.UserID, d.FirstName, d.MiddleName, d.LastName, d.DisplayName, d.Email,
		d.DateOfBirth, d.GenderID, d.ProfilePictureURL, d.Creator, d.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrDuplicate
		}
		return fmt.Errorf("inserting user details: %w", err)
	}
	return nil
}

func (s *Postgres) GetByUserID(ctx context.Context, userID int64) (*models.UserDetails, error) {
	var d models.UserDetails
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, first_name, middle_name, last_name, display_name, email,
		       date_of_birth, gender_id, profile_picture_url, creator, created_at, updator, updated_at
		FROM user_details
		WHERE user_id = $1`, userID,
	).Scan(&d.UserID, &d.FirstName, &d.MiddleName, &d.LastName, &d.DisplayName, &d.Email,
		&d.DateOfBirth, &d.GenderID, &d.ProfilePictureURL, &d.Creator, &d.CreatedAt, &d.Updator, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting user details: %w", err)
	}
	return &d, nil
}

func (s *Postgres) Update(ctx context.Context, d *models.UserDetails) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE user_details
		SET first_name = $2, middle_name = $3, last_name = $4, display_name = $5,
		    email = $6, date_of_birth = $7, gender_id = $8, profile_picture_url = $9,
		    updator = $10, updated_at = $11
		WHERE user_id = $1`,
		d.UserID, d.FirstName, d.MiddleName, d.LastName, d.DisplayName, d.Email,
		d.DateOfBirth, d.GenderID, d.ProfilePictureURL, d.Updator, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating user details: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
