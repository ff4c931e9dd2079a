package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjza/mra-core-sub001/internal/query"
	"github.com/mjza/mra-core-sub001/internal/reference/models"
)

// Postgres serves reference rows from the relational store, compiling
// filter predicates into parameterized SQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed reference store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) ListGenderTypes(ctx context.Context, where query.Expression, limit, offset int) ([]models.GenderType, error) {
	clause, args, err := query.CompileSQL(where)
	if err != nil {
		return nil, fmt.Errorf("compile gender filter: %w", err)
	}

	sql := `SELECT gender_id, gender_name, sort_order, COALESCE(description, '') FROM gender_types`
	if clause != "" {
		sql += " WHERE " + clause
	}
	sql += fmt.Sprintf(" ORDER BY sort_order ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list gender types: %w", err)
	}
	defer rows.Close()

	out := []models.GenderType{}
	for rows.Next() {
		var g models.GenderType
		if err := rows.Scan(&g.ID, &g.GenderName, &g.SortOrder, &g.Description); err != nil {
			return nil, fmt.Errorf("scan gender type: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Postgres) ListTicketCategories(ctx context.Context, where query.Expression, limit, offset int) ([]models.TicketCategory, error) {
	clause, args, err := query.CompileSQL(where)
	if err != nil {
		return nil, fmt.Errorf("compile category filter: %w", err)
	}

	sql := `SELECT ticket_category_id, category_name, sort_order, COALESCE(description, '') FROM ticket_categories`
	if clause != "" {
		sql += " WHERE " + clause
	}
	sql += fmt.Sprintf(" ORDER BY sort_order ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list ticket categories: %w", err)
	}
	defer rows.Close()

	out := []models.TicketCategory{}
	for rows.Next() {
		var c models.TicketCategory
		if err := rows.Scan(&c.ID, &c.CategoryName, &c.SortOrder, &c.Description); err != nil {
			return nil, fmt.Errorf("scan ticket category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) GenderTypeExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM gender_types WHERE gender_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check gender type: %w", err)
	}
	return exists, nil
}

func (s *Postgres) GenderIDRange(ctx context.Context) (int64, int64, error) {
	var min, max int64
	err := s.pool.QueryRow(ctx,
		`SELECT MIN(gender_id), MAX(gender_id) FROM gender_types`).Scan(&min, &max)
	if err != nil {
		return 0, 0, fmt.Errorf("gender id range: %w", err)
	}
	return min, max, nil
}
