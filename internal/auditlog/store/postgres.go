package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mjza/mra-core-sub001/internal/auditlog/models"
	"github.com/mjza/mra-core-sub001/internal/query"
	"github.com/mjza/mra-core-sub001/pkg/platform/sentinel"
)

// Postgres persists audit entries through database/sql. The snapshot is
// stored as jsonb so individual request fields stay queryable.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Insert(ctx context.Context, e *models.Entry) (int64, error) {
	snapshot, err := json.Marshal(e.Snapshot)
	if err != nil {
		return 0, fmt.Errorf("marshaling request snapshot: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO audit_logs (method_route, request, comments, ip_address, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING log_id`,
		e.MethodRoute, snapshot, e.Comments, e.IPAddress, e.UserID, e.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting audit log: %w", err)
	}
	return id, nil
}

func (s *Postgres) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT log_id, method_route, request, comments, ip_address, user_id, created_at, updated_at
		FROM audit_logs
		WHERE log_id = $1`, id)
	return scanEntry(row)
}

// AppendComments concatenates the new text onto the stored comments in a
// single statement so concurrent updates cannot drop each other's text.
func (s *Postgres) AppendComments(ctx context.Context, id int64, comments string, at time.Time) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE audit_logs
		SET comments = CASE
			WHEN comments = '' THEN $2
			WHEN $2 = '' THEN comments
			ELSE comments || E'\n' || $2
		END,
		    updated_at = $3
		WHERE log_id = $1
		RETURNING log_id, method_route, request, comments, ip_address, user_id, created_at, updated_at`,
		id, comments, at)
	return scanEntry(row)
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE log_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting audit log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ListByUser returns the caller's entries matching where, oldest first.
// The filter compiles to SQL so the database does the matching.
func (s *Postgres) ListByUser(ctx context.Context, userID int64, where query.Expression) ([]models.Entry, error) {
	combined := query.NewFieldMap().Set("user_id", query.Scalar{Value: userID})
	if where != nil {
		combined.Set("$and", query.List{Items: []query.Expression{where}})
	}
	clause, args, err := query.CompileSQL(combined)
	if err != nil {
		return nil, fmt.Errorf("compiling audit log filter: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT log_id, method_route, request, comments, ip_address, user_id, created_at, updated_at
		FROM audit_logs
		WHERE `+clause+`
		ORDER BY log_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	defer rows.Close()

	var out []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit logs: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.Entry, error) {
	var (
		e        models.Entry
		snapshot []byte
		updated  sql.NullTime
	)
	err := row.Scan(&e.LogID, &e.MethodRoute, &snapshot, &e.Comments, &e.IPAddress, &e.UserID, &e.CreatedAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning audit log: %w", err)
	}
	if err := json.Unmarshal(snapshot, &e.Snapshot); err != nil {
		return nil, fmt.Errorf("unmarshaling request snapshot: %w", err)
	}
	if updated.Valid {
		e.UpdatedAt = &updated.Time
	}
	return &e, nil
}
