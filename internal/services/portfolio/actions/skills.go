package actions

import (
	"context"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	"go.uber.org/zap"
)

const entitySkill = "skill"

// Skills implements skill create, update and delete. Names are unique through
// the store's index and surface through the generic unique-field failure.
type Skills struct {
	runner
	store storage.SkillStore
}

// Create validates and persists a new skill.
func (s *Skills) Create(ctx context.Context, input domain.SkillInput) domain.SkillResult {
	ctx, span, cancel := s.start(ctx, entitySkill, "create")
	defer cancel()

	if errs := input.Validate(); !errs.Empty() {
		return finish(s.runner, span, entitySkill, "create", invalidForm(errs))
	}
	skill := input.Skill()
	skill.ID = s.newID()
	if err := s.store.CreateSkill(ctx, skill); err != nil {
		return finish(s.runner, span, entitySkill, "create",
			persistFailure(err, "", domain.ParseSkillField, MsgSkillNotFound), zap.String("name", skill.Name))
	}
	s.invalidate(ctx, PathHome)
	return finish(s.runner, span, entitySkill, "create",
		domain.Succeeded[domain.SkillField](MsgSkillCreated), zap.String("id", skill.ID))
}

// Update replaces the skill identified by id.
func (s *Skills) Update(ctx context.Context, id string, input domain.SkillInput) domain.SkillResult {
	ctx, span, cancel := s.start(ctx, entitySkill, "update")
	defer cancel()

	if errs := input.Validate(); !errs.Empty() {
		return finish(s.runner, span, entitySkill, "update", invalidForm(errs))
	}
	existing, err := s.store.GetSkill(ctx, id)
	if err != nil {
		return finish(s.runner, span, entitySkill, "update",
			lookupFailure[domain.SkillField](err, MsgSkillNotFound))
	}
	skill := input.Skill()
	skill.ID = existing.ID
	skill.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateSkill(ctx, skill); err != nil {
		return finish(s.runner, span, entitySkill, "update",
			persistFailure(err, "", domain.ParseSkillField, MsgSkillNotFound))
	}
	s.invalidate(ctx, PathHome)
	return finish(s.runner, span, entitySkill, "update",
		domain.Succeeded[domain.SkillField](MsgSkillUpdated), zap.String("id", id))
}

// Delete removes the skill identified by id.
func (s *Skills) Delete(ctx context.Context, id string) domain.SkillResult {
	ctx, span, cancel := s.start(ctx, entitySkill, "delete")
	defer cancel()

	if err := s.store.DeleteSkill(ctx, id); err != nil {
		return finish(s.runner, span, entitySkill, "delete",
			persistFailure(err, "", domain.ParseSkillField, MsgSkillNotFound))
	}
	s.invalidate(ctx, PathHome)
	return finish(s.runner, span, entitySkill, "delete",
		domain.Succeeded[domain.SkillField](MsgSkillDeleted), zap.String("id", id))
}
