package actions

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/stretchr/testify/require"
)

func TestSkillDuplicateNameUsesGenericUniqueFailure(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	f := newFixture(t, store)
	ctx := context.Background()

	input := domain.SkillInput{Name: "Go", Category: "Languages", Level: 5}
	require.Equal(t, MsgSkillCreated, f.actions.Skills.Create(ctx, input).Message)

	result := f.actions.Skills.Create(ctx, input)
	want := domain.SkillResult{
		Message: "A record with this name already exists.",
		Errors:  map[domain.SkillField][]string{domain.SkillName: {"A record with this name already exists."}},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSkillUpdateAndDelete(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	f := newFixture(t, store)
	ctx := context.Background()

	require.True(t, f.actions.Skills.Create(ctx, domain.SkillInput{Name: "Go", Category: "Languages", Level: 4}).Success)
	skills, err := store.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)

	require.True(t, f.actions.Skills.Update(ctx, skills[0].ID, domain.SkillInput{Name: "Go", Category: "Languages", Level: 5}).Success)
	got, err := store.GetSkill(ctx, skills[0].ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Level)

	invalid := f.actions.Skills.Update(ctx, skills[0].ID, domain.SkillInput{Name: "Go", Category: "Languages", Level: 9})
	require.Equal(t, MsgInvalidForm, invalid.Message)

	require.True(t, f.actions.Skills.Delete(ctx, skills[0].ID).Success)
	require.Equal(t, MsgSkillNotFound, f.actions.Skills.Delete(ctx, skills[0].ID).Message)
}
