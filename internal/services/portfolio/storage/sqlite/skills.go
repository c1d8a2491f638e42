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

const skillColumns = `id, name, category, level, sort_order, created_at, updated_at`

// CreateSkill inserts one skill. A duplicate name yields a
// *storage.UniqueViolation naming "name".
func (s *Store) CreateSkill(ctx context.Context, sk domain.Skill) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(sk.ID) == "" {
		return fmt.Errorf("skill id is required")
	}
	createdAt, updatedAt := s.stamp(sk.CreatedAt, sk.UpdatedAt)
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO skills (`+skillColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sk.ID, sk.Name, sk.Category, sk.Level, sk.SortOrder,
		toMillis(createdAt), toMillis(updatedAt),
	)
	if err != nil {
		return wrapWriteErr("create skill", err)
	}
	return nil
}

// UpdateSkill replaces the mutable fields of a skill.
func (s *Store) UpdateSkill(ctx context.Context, sk domain.Skill) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	updatedAt := sk.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE skills SET name = ?, category = ?, level = ?, sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		sk.Name, sk.Category, sk.Level, sk.SortOrder, toMillis(updatedAt), sk.ID,
	)
	if err != nil {
		return wrapWriteErr("update skill", err)
	}
	return expectAffected(res, "update skill")
}

// DeleteSkill removes one skill by id.
func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return expectAffected(res, "delete skill")
}

// GetSkill returns one skill by id.
func (s *Store) GetSkill(ctx context.Context, id string) (domain.Skill, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Skill{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ?`, id)
	sk, err := scanSkill(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Skill{}, storage.ErrNotFound
		}
		return domain.Skill{}, fmt.Errorf("get skill: %w", err)
	}
	return sk, nil
}

// ListSkills returns skills ordered by category, sort order and name.
func (s *Store) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+skillColumns+` FROM skills ORDER BY category ASC, sort_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	out := []domain.Skill{}
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("list skills: %w", err)
		}
		out = append(out, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return out, nil
}

func scanSkill(row rowScanner) (domain.Skill, error) {
	var (
		sk                   domain.Skill
		createdAt, updatedAt int64
	)
	if err := row.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.SortOrder, &createdAt, &updatedAt); err != nil {
		return domain.Skill{}, err
	}
	sk.CreatedAt = fromMillis(createdAt)
	sk.UpdatedAt = fromMillis(updatedAt)
	return sk, nil
}
