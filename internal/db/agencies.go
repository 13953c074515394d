package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Agency is a temporary-work agency listed in the directory.
type Agency struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" validate:"required"`
	City        string    `json:"city"`
	Canton      string    `json:"canton"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Website     string    `json:"website" validate:"omitempty,url"`
	Specialties []string  `json:"specialties"`
	Languages   []string  `json:"languages"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AgencyFilter narrows an agency listing. Zero values mean no constraint.
type AgencyFilter struct {
	Canton    string
	Specialty string
	Query     string // case-insensitive match on name or city
}

const agencyColumns = `id, name, city, canton, address, phone, email, website, specialties, languages, created_at, updated_at`

func scanAgency(row pgx.Row) (*Agency, error) {
	var a Agency
	err := row.Scan(&a.ID, &a.Name, &a.City, &a.Canton, &a.Address, &a.Phone,
		&a.Email, &a.Website, &a.Specialties, &a.Languages, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAgency inserts a new agency and returns the stored record
func (db *DB) CreateAgency(ctx context.Context, a *Agency) (*Agency, error) {
	if strings.TrimSpace(a.Name) == "" {
		return nil, fmt.Errorf("agency name cannot be empty")
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO agencies (name, city, canton, address, phone, email, website, specialties, languages)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+agencyColumns,
		a.Name, a.City, a.Canton, a.Address, a.Phone, a.Email, a.Website, a.Specialties, a.Languages,
	)
	created, err := scanAgency(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create agency: %w", err)
	}
	return created, nil
}

// GetAgencyByID retrieves an agency by its UUID; nil when absent
func (db *DB) GetAgencyByID(ctx context.Context, id uuid.UUID) (*Agency, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+agencyColumns+` FROM agencies WHERE id = $1`, id)
	a, err := scanAgency(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agency: %w", err)
	}
	return a, nil
}

// ListAgencies returns agencies matching the filter, name-ordered
func (db *DB) ListAgencies(ctx context.Context, filter AgencyFilter) ([]*Agency, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Canton != "" {
		conds = append(conds, "canton = "+arg(filter.Canton))
	}
	if filter.Specialty != "" {
		conds = append(conds, arg(filter.Specialty)+" = ANY(specialties)")
	}
	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		conds = append(conds, "(name ILIKE "+p+" OR city ILIKE "+p+")")
	}

	query := `SELECT ` + agencyColumns + ` FROM agencies`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}
	defer rows.Close()

	var agencies []*Agency
	for rows.Next() {
		a, err := scanAgency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agency: %w", err)
		}
		agencies = append(agencies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}
	return agencies, nil
}

// UpdateAgency replaces the mutable fields of an agency; nil when absent
func (db *DB) UpdateAgency(ctx context.Context, id uuid.UUID, a *Agency) (*Agency, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE agencies
		 SET name = $1, city = $2, canton = $3, address = $4, phone = $5,
		     email = $6, website = $7, specialties = $8, languages = $9, updated_at = NOW()
		 WHERE id = $10
		 RETURNING `+agencyColumns,
		a.Name, a.City, a.Canton, a.Address, a.Phone, a.Email, a.Website,
		a.Specialties, a.Languages, id,
	)
	updated, err := scanAgency(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update agency: %w", err)
	}
	return updated, nil
}

// DeleteAgency removes an agency; reports whether a row was deleted
func (db *DB) DeleteAgency(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM agencies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete agency: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
