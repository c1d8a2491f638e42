// Package storage defines persistence contracts for portfolio content.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// UniqueViolation reports the columns of a unique index a write collided with.
type UniqueViolation struct {
	Table  string
	Fields []string
}

func (e *UniqueViolation) Error() string {
	if len(e.Fields) == 0 {
		return "unique constraint failed"
	}
	return "unique constraint failed: " + e.Table + "." + strings.Join(e.Fields, ", ")
}

// Is matches ErrAlreadyExists.
func (e *UniqueViolation) Is(target error) bool {
	return target == ErrAlreadyExists
}

// Has reports whether field is among the violated columns.
func (e *UniqueViolation) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	FeaturedOnly bool
	Limit        int
}

// ProjectStore persists projects.
type ProjectStore interface {
	CreateProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
	DeleteProject(ctx context.Context, id string) error
	GetProject(ctx context.Context, id string) (domain.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (domain.Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
}

// ExperienceStore persists career entries.
type ExperienceStore interface {
	CreateExperience(ctx context.Context, experience domain.Experience) error
	UpdateExperience(ctx context.Context, experience domain.Experience) error
	DeleteExperience(ctx context.Context, id string) error
	GetExperience(ctx context.Context, id string) (domain.Experience, error)
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
}

// SkillStore persists skills.
type SkillStore interface {
	CreateSkill(ctx context.Context, skill domain.Skill) error
	UpdateSkill(ctx context.Context, skill domain.Skill) error
	DeleteSkill(ctx context.Context, id string) error
	GetSkill(ctx context.Context, id string) (domain.Skill, error)
	ListSkills(ctx context.Context) ([]domain.Skill, error)
}

// Counts summarizes stored content for the admin dashboard.
type Counts struct {
	Projects    int
	Experiences int
	Skills      int
}

// Store is the full portfolio persistence surface.
type Store interface {
	ProjectStore
	ExperienceStore
	SkillStore
	Counts(ctx context.Context) (Counts, error)
	Ping(ctx context.Context) error
}
