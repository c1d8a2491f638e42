package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
)

const experienceColumns = `id, company, role, location, start_date, end_date,
	is_current, description, technologies, sort_order, created_at, updated_at`

// CreateExperience inserts one career entry.
func (s *Store) CreateExperience(ctx context.Context, e domain.Experience) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("experience id is required")
	}
	technologies, err := encodeList(e.Technologies)
	if err != nil {
		return fmt.Errorf("create experience: encode technologies: %w", err)
	}
	createdAt, updatedAt := s.stamp(e.CreatedAt, e.UpdatedAt)
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO experiences (`+experienceColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Company, e.Role, e.Location, e.StartDate, e.EndDate,
		boolInt(e.Current), e.Description, technologies, e.SortOrder,
		toMillis(createdAt), toMillis(updatedAt),
	)
	if err != nil {
		return wrapWriteErr("create experience", err)
	}
	return nil
}

// UpdateExperience replaces the mutable fields of a career entry.
func (s *Store) UpdateExperience(ctx context.Context, e domain.Experience) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	technologies, err := encodeList(e.Technologies)
	if err != nil {
		return fmt.Errorf("update experience: encode technologies: %w", err)
	}
	updatedAt := e.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE experiences SET
		   company = ?, role = ?, location = ?, start_date = ?, end_date = ?,
		   is_current = ?, description = ?, technologies = ?, sort_order = ?,
		   updated_at = ?
		 WHERE id = ?`,
		e.Company, e.Role, e.Location, e.StartDate, e.EndDate,
		boolInt(e.Current), e.Description, technologies, e.SortOrder,
		toMillis(updatedAt), e.ID,
	)
	if err != nil {
		return wrapWriteErr("update experience", err)
	}
	return expectAffected(res, "update experience")
}

// DeleteExperience removes one career entry by id.
func (s *Store) DeleteExperience(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return expectAffected(res, "delete experience")
}

// GetExperience returns one career entry by id.
func (s *Store) GetExperience(ctx context.Context, id string) (domain.Experience, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Experience{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = ?`, id)
	e, err := scanExperience(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Experience{}, storage.ErrNotFound
		}
		return domain.Experience{}, fmt.Errorf("get experience: %w", err)
	}
	return e, nil
}

// ListExperiences returns current positions first, then newest start date.
func (s *Store) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+experienceColumns+` FROM experiences
		 ORDER BY sort_order ASC, is_current DESC, start_date DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	out := []domain.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("list experiences: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	return out, nil
}

func scanExperience(row rowScanner) (domain.Experience, error) {
	var (
		e                    domain.Experience
		current              int
		technologies         string
		createdAt, updatedAt int64
	)
	if err := row.Scan(
		&e.ID, &e.Company, &e.Role, &e.Location, &e.StartDate, &e.EndDate,
		&current, &e.Description, &technologies, &e.SortOrder,
		&createdAt, &updatedAt,
	); err != nil {
		return domain.Experience{}, err
	}
	list, err := decodeList(technologies)
	if err != nil {
		return domain.Experience{}, fmt.Errorf("decode technologies: %w", err)
	}
	e.Technologies = list
	e.Current = current != 0
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	return e, nil
}
