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

const projectColumns = `id, slug, title, short_description, description,
	technologies, features, cover_image, details_images,
	github_url, live_url, featured, sort_order, created_at, updated_at`

// CreateProject inserts one project. A duplicate slug yields a
// *storage.UniqueViolation naming "slug".
func (s *Store) CreateProject(ctx context.Context, p domain.Project) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("project slug is required")
	}
	args, err := projectArgs(p)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	createdAt, updatedAt := s.stamp(p.CreatedAt, p.UpdatedAt)
	args = append(args, toMillis(createdAt), toMillis(updatedAt))

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return wrapWriteErr("create project", err)
	}
	return nil
}

// UpdateProject replaces the mutable fields of an existing project.
func (s *Store) UpdateProject(ctx context.Context, p domain.Project) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project id is required")
	}
	args, err := projectArgs(p)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}
	// Drop id from the head and append it for the WHERE clause.
	args = append(args[1:], toMillis(updatedAt), p.ID)

	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE projects SET
		   slug = ?, title = ?, short_description = ?, description = ?,
		   technologies = ?, features = ?, cover_image = ?, details_images = ?,
		   github_url = ?, live_url = ?, featured = ?, sort_order = ?,
		   updated_at = ?
		 WHERE id = ?`,
		args...,
	)
	if err != nil {
		return wrapWriteErr("update project", err)
	}
	return expectAffected(res, "update project")
}

// DeleteProject removes one project by id.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return expectAffected(res, "delete project")
}

// GetProject returns one project by id.
func (s *Store) GetProject(ctx context.Context, id string) (domain.Project, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Project{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, storage.ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// GetProjectBySlug returns the project with exactly this slug.
func (s *Store) GetProjectBySlug(ctx context.Context, slug string) (domain.Project, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Project{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, storage.ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("get project by slug: %w", err)
	}
	return p, nil
}

// ListProjects returns projects ordered by sort order then newest first.
func (s *Store) ListProjects(ctx context.Context, filter storage.ProjectFilter) ([]domain.Project, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if filter.FeaturedOnly {
		query += ` WHERE featured = 1`
	}
	query += ` ORDER BY sort_order ASC, created_at DESC, id ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// projectArgs returns column values in projectColumns order up to sort_order.
func projectArgs(p domain.Project) ([]any, error) {
	technologies, err := encodeList(p.Technologies)
	if err != nil {
		return nil, fmt.Errorf("encode technologies: %w", err)
	}
	features, err := encodeList(p.Features)
	if err != nil {
		return nil, fmt.Errorf("encode features: %w", err)
	}
	images, err := encodeList(p.DetailsImages)
	if err != nil {
		return nil, fmt.Errorf("encode details images: %w", err)
	}
	return []any{
		p.ID, p.Slug, p.Title, p.ShortDescription, p.Description,
		technologies, features, p.CoverImage, images,
		p.GithubURL, p.LiveURL, boolInt(p.Featured), p.SortOrder,
	}, nil
}

func scanProject(row rowScanner) (domain.Project, error) {
	var (
		p                              domain.Project
		technologies, features, images string
		featured                       int
		createdAt, updatedAt           int64
	)
	if err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.ShortDescription, &p.Description,
		&technologies, &features, &p.CoverImage, &images,
		&p.GithubURL, &p.LiveURL, &featured, &p.SortOrder,
		&createdAt, &updatedAt,
	); err != nil {
		return domain.Project{}, err
	}
	var err error
	if p.Technologies, err = decodeList(technologies); err != nil {
		return domain.Project{}, fmt.Errorf("decode technologies: %w", err)
	}
	if p.Features, err = decodeList(features); err != nil {
		return domain.Project{}, fmt.Errorf("decode features: %w", err)
	}
	if p.DetailsImages, err = decodeList(images); err != nil {
		return domain.Project{}, fmt.Errorf("decode details images: %w", err)
	}
	p.Featured = featured != 0
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}
