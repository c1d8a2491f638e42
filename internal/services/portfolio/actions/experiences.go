package actions

import (
	"context"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	"go.uber.org/zap"
)

const entityExperience = "experience"

// PathExperience is the public career page.
const PathExperience = "/experience"

// Experiences implements career entry create, update and delete.
type Experiences struct {
	runner
	store storage.ExperienceStore
}

// Create validates and persists a new career entry.
func (e *Experiences) Create(ctx context.Context, input domain.ExperienceInput) domain.ExperienceResult {
	ctx, span, cancel := e.start(ctx, entityExperience, "create")
	defer cancel()

	if errs := input.Validate(); !errs.Empty() {
		return finish(e.runner, span, entityExperience, "create", invalidForm(errs))
	}
	exp := input.Experience()
	exp.ID = e.newID()
	if err := e.store.CreateExperience(ctx, exp); err != nil {
		e.logger.Warn("create experience failed", zap.Error(err))
		return finish(e.runner, span, entityExperience, "create",
			persistFailure(err, "", domain.ParseExperienceField, MsgExperienceNotFound))
	}
	e.invalidate(ctx, PathExperience, PathHome)
	return finish(e.runner, span, entityExperience, "create",
		domain.Succeeded[domain.ExperienceField](MsgExperienceCreated), zap.String("id", exp.ID))
}

// Update replaces the career entry identified by id.
func (e *Experiences) Update(ctx context.Context, id string, input domain.ExperienceInput) domain.ExperienceResult {
	ctx, span, cancel := e.start(ctx, entityExperience, "update")
	defer cancel()

	if errs := input.Validate(); !errs.Empty() {
		return finish(e.runner, span, entityExperience, "update", invalidForm(errs))
	}
	existing, err := e.store.GetExperience(ctx, id)
	if err != nil {
		return finish(e.runner, span, entityExperience, "update",
			lookupFailure[domain.ExperienceField](err, MsgExperienceNotFound))
	}
	exp := input.Experience()
	exp.ID = existing.ID
	exp.CreatedAt = existing.CreatedAt
	if err := e.store.UpdateExperience(ctx, exp); err != nil {
		return finish(e.runner, span, entityExperience, "update",
			persistFailure(err, "", domain.ParseExperienceField, MsgExperienceNotFound))
	}
	e.invalidate(ctx, PathExperience, PathHome)
	return finish(e.runner, span, entityExperience, "update",
		domain.Succeeded[domain.ExperienceField](MsgExperienceUpdated), zap.String("id", id))
}

// Delete removes the career entry identified by id.
func (e *Experiences) Delete(ctx context.Context, id string) domain.ExperienceResult {
	ctx, span, cancel := e.start(ctx, entityExperience, "delete")
	defer cancel()

	if err := e.store.DeleteExperience(ctx, id); err != nil {
		return finish(e.runner, span, entityExperience, "delete",
			persistFailure(err, "", domain.ParseExperienceField, MsgExperienceNotFound))
	}
	e.invalidate(ctx, PathExperience, PathHome)
	return finish(e.runner, span, entityExperience, "delete",
		domain.Succeeded[domain.ExperienceField](MsgExperienceDeleted), zap.String("id", id))
}
