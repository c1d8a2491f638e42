package actions

import (
	"context"
	"errors"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	"go.uber.org/zap"
)

const entityProject = "project"

// Public paths whose cached renderings list projects.
const (
	PathHome     = "/"
	PathProjects = "/projects"
)

// ProjectPath returns the public detail path for slug.
func ProjectPath(slug string) string {
	return PathProjects + "/" + slug
}

// Projects implements project create, update and delete.
type Projects struct {
	runner
	store storage.ProjectStore
}

// Create validates input, resolves a unique slug and persists a new project.
//
// The slug pre-check fails fast in the common case; the store's unique index
// decides races between concurrent creates.
func (p *Projects) Create(ctx context.Context, input domain.ProjectInput) domain.ProjectResult {
	ctx, span, cancel := p.start(ctx, entityProject, "create")
	defer cancel()
	done := func(r domain.ProjectResult, fields ...zap.Field) domain.ProjectResult {
		return finish(p.runner, span, entityProject, "create", r, fields...)
	}

	if errs := input.Validate(); !errs.Empty() {
		return done(invalidForm(errs))
	}
	slug, res, ok := p.resolveSlug(input)
	if !ok {
		return done(res)
	}

	_, err := p.store.GetProjectBySlug(ctx, slug)
	switch {
	case err == nil:
		return done(slugConflict(domain.ProjectSlug), zap.String("slug", slug))
	case !errors.Is(err, storage.ErrNotFound):
		p.logger.Warn("slug uniqueness check failed", zap.String("slug", slug), zap.Error(err))
		return done(domain.Failed[domain.ProjectField](MsgSlugCheckFailed, nil))
	}

	project := input.Project(slug)
	project.ID = p.newID()
	if err := p.store.CreateProject(ctx, project); err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			p.logger.Warn("create project failed", zap.String("slug", slug), zap.Error(err))
		}
		return done(persistFailure(err, domain.ProjectSlug, domain.ParseProjectField, MsgProjectNotFound), zap.String("slug", slug))
	}

	p.invalidate(ctx, PathProjects, PathHome, ProjectPath(slug))
	return done(domain.Succeeded[domain.ProjectField](MsgProjectCreated), zap.String("id", project.ID), zap.String("slug", slug))
}

// Update replaces the project identified by id. The slug check ignores the
// project being edited.
func (p *Projects) Update(ctx context.Context, id string, input domain.ProjectInput) domain.ProjectResult {
	ctx, span, cancel := p.start(ctx, entityProject, "update")
	defer cancel()
	done := func(r domain.ProjectResult, fields ...zap.Field) domain.ProjectResult {
		return finish(p.runner, span, entityProject, "update", r, append(fields, zap.String("id", id))...)
	}

	if errs := input.Validate(); !errs.Empty() {
		return done(invalidForm(errs))
	}
	existing, err := p.store.GetProject(ctx, id)
	if err != nil {
		return done(lookupFailure[domain.ProjectField](err, MsgProjectNotFound))
	}
	slug, res, ok := p.resolveSlug(input)
	if !ok {
		return done(res)
	}

	other, err := p.store.GetProjectBySlug(ctx, slug)
	switch {
	case err == nil && other.ID != existing.ID:
		return done(slugConflict(domain.ProjectSlug), zap.String("slug", slug))
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		p.logger.Warn("slug uniqueness check failed", zap.String("slug", slug), zap.Error(err))
		return done(domain.Failed[domain.ProjectField](MsgSlugCheckFailed, nil))
	}

	project := input.Project(slug)
	project.ID = existing.ID
	project.CreatedAt = existing.CreatedAt
	if err := p.store.UpdateProject(ctx, project); err != nil {
		return done(persistFailure(err, domain.ProjectSlug, domain.ParseProjectField, MsgProjectNotFound))
	}

	p.invalidate(ctx, PathProjects, PathHome, ProjectPath(existing.Slug), ProjectPath(slug))
	return done(domain.Succeeded[domain.ProjectField](MsgProjectUpdated), zap.String("slug", slug))
}

// Delete removes the project identified by id.
func (p *Projects) Delete(ctx context.Context, id string) domain.ProjectResult {
	ctx, span, cancel := p.start(ctx, entityProject, "delete")
	defer cancel()
	done := func(r domain.ProjectResult) domain.ProjectResult {
		return finish(p.runner, span, entityProject, "delete", r, zap.String("id", id))
	}

	existing, err := p.store.GetProject(ctx, id)
	if err != nil {
		return done(lookupFailure[domain.ProjectField](err, MsgProjectNotFound))
	}
	if err := p.store.DeleteProject(ctx, id); err != nil {
		return done(persistFailure(err, domain.ProjectSlug, domain.ParseProjectField, MsgProjectNotFound))
	}
	p.invalidate(ctx, PathProjects, PathHome, ProjectPath(existing.Slug))
	return done(domain.Succeeded[domain.ProjectField](MsgProjectDeleted))
}

// resolveSlug picks the supplied slug or derives one from the title. A title
// with nothing slug-worthy fails on the title field. A title that derives to
// an invalid slug, such as one keeping an underscore, asks for an explicit
// slug instead.
func (p *Projects) resolveSlug(input domain.ProjectInput) (string, domain.ProjectResult, bool) {
	slug := input.ResolveSlug()
	if domain.ValidSlug(slug) {
		return slug, domain.ProjectResult{}, true
	}
	errs := domain.FieldErrors[domain.ProjectField]{}
	if slug == "" {
		errs.Add(domain.ProjectTitle, MsgTitleNeedsSlugChars)
	} else {
		errs.Add(domain.ProjectSlug, MsgSlugRequired)
	}
	return "", invalidForm(errs), false
}
