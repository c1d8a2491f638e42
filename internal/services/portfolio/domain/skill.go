package domain

import "time"

// SkillField names a skill form field.
type SkillField string

const (
	SkillName      SkillField = "name"
	SkillCategory  SkillField = "category"
	SkillLevel     SkillField = "level"
	SkillSortOrder SkillField = "sortOrder"
)

// ParseSkillField maps a field or column name to a schema field.
func ParseSkillField(name string) (SkillField, bool) {
	switch f := SkillField(name); f {
	case SkillName, SkillCategory, SkillLevel, SkillSortOrder:
		return f, true
	}
	return "", false
}

// SkillResult is the outcome of a skill action.
type SkillResult = Result[SkillField]

const (
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// SkillInput is the submitted skill form.
type SkillInput struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Level     int    `json:"level"`
	SortOrder int    `json:"sortOrder"`
}

// Skill is a persisted skill with a proficiency level.
type Skill struct {
	ID        string
	Name      string
	Category  string
	Level     int
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the input against the skill schema.
func (in SkillInput) Validate() FieldErrors[SkillField] {
	errs := FieldErrors[SkillField]{}
	checkLength(errs, SkillName, "Name", clean(in.Name), 1, 50)
	checkLength(errs, SkillCategory, "Category", clean(in.Category), 1, 50)
	if in.Level < MinSkillLevel || in.Level > MaxSkillLevel {
		errs.Add(SkillLevel, "Level must be between 1 and 5.")
	}
	checkSortOrder(errs, SkillSortOrder, in.SortOrder)
	return errs
}

// Skill builds the normalized entity.
func (in SkillInput) Skill() Skill {
	return Skill{
		Name:      clean(in.Name),
		Category:  clean(in.Category),
		Level:     in.Level,
		SortOrder: in.SortOrder,
	}
}

// Input renders a stored skill back into its form encoding.
func (s Skill) Input() SkillInput {
	return SkillInput{Name: s.Name, Category: s.Category, Level: s.Level, SortOrder: s.SortOrder}
}

// GroupSkills groups skills by category preserving first-seen category order.
func GroupSkills(skills []Skill) []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

// SkillGroup is one category of skills.
type SkillGroup struct {
	Category string
	Skills   []Skill
}
