package domain

import "time"

// ExperienceField names an experience form field.
type ExperienceField string

const (
	ExperienceCompany      ExperienceField = "company"
	ExperienceRole         ExperienceField = "role"
	ExperienceLocation     ExperienceField = "location"
	ExperienceStartDate    ExperienceField = "startDate"
	ExperienceEndDate      ExperienceField = "endDate"
	ExperienceCurrent      ExperienceField = "current"
	ExperienceDescription  ExperienceField = "description"
	ExperienceTechnologies ExperienceField = "technologiesString"
	ExperienceSortOrder    ExperienceField = "sortOrder"
)

var experienceFields = map[string]ExperienceField{}

func init() {
	for _, f := range []ExperienceField{
		ExperienceCompany, ExperienceRole, ExperienceLocation, ExperienceStartDate,
		ExperienceEndDate, ExperienceCurrent, ExperienceDescription,
		ExperienceTechnologies, ExperienceSortOrder,
	} {
		experienceFields[string(f)] = f
	}
}

// ParseExperienceField maps a field or column name to a schema field.
func ParseExperienceField(name string) (ExperienceField, bool) {
	f, ok := experienceFields[name]
	return f, ok
}

// ExperienceResult is the outcome of an experience action.
type ExperienceResult = Result[ExperienceField]

// ExperienceInput is the submitted career-entry form. Dates are YYYY-MM.
type ExperienceInput struct {
	Company            string `json:"company"`
	Role               string `json:"role"`
	Location           string `json:"location"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	Current            bool   `json:"current"`
	Description        string `json:"description"`
	TechnologiesString string `json:"technologiesString"`
	SortOrder          int    `json:"sortOrder"`
}

// Experience is a persisted career entry.
type Experience struct {
	ID           string
	Company      string
	Role         string
	Location     string
	StartDate    string
	EndDate      string
	Current      bool
	Description  string
	Technologies []string
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the input against the experience schema.
func (in ExperienceInput) Validate() FieldErrors[ExperienceField] {
	errs := FieldErrors[ExperienceField]{}
	checkLength(errs, ExperienceCompany, "Company", clean(in.Company), 2, 100)
	checkLength(errs, ExperienceRole, "Role", clean(in.Role), 2, 100)
	checkLength(errs, ExperienceLocation, "Location", clean(in.Location), 0, 100)
	checkLength(errs, ExperienceDescription, "Description", clean(in.Description), 20, 0)

	start, end := clean(in.StartDate), clean(in.EndDate)
	switch {
	case start == "":
		errs.Add(ExperienceStartDate, "Start date is required.")
	case !monthPattern.MatchString(start):
		errs.Add(ExperienceStartDate, "Start date must use the YYYY-MM format.")
	}
	switch {
	case in.Current && end != "":
		errs.Add(ExperienceEndDate, "A current position cannot have an end date.")
	case !in.Current && end == "":
		errs.Add(ExperienceEndDate, "End date is required unless the position is current.")
	case end != "" && !monthPattern.MatchString(end):
		errs.Add(ExperienceEndDate, "End date must use the YYYY-MM format.")
	case end != "" && monthPattern.MatchString(start) && end < start:
		errs.Add(ExperienceEndDate, "End date cannot be before the start date.")
	}
	checkSortOrder(errs, ExperienceSortOrder, in.SortOrder)
	return errs
}

// Experience builds the normalized entity.
func (in ExperienceInput) Experience() Experience {
	end := clean(in.EndDate)
	if in.Current {
		end = ""
	}
	return Experience{
		Company:      clean(in.Company),
		Role:         clean(in.Role),
		Location:     clean(in.Location),
		StartDate:    clean(in.StartDate),
		EndDate:      end,
		Current:      in.Current,
		Description:  clean(in.Description),
		Technologies: ParseList(in.TechnologiesString),
		SortOrder:    in.SortOrder,
	}
}

// Input renders a stored experience back into its form encoding.
func (e Experience) Input() ExperienceInput {
	return ExperienceInput{
		Company:            e.Company,
		Role:               e.Role,
		Location:           e.Location,
		StartDate:          e.StartDate,
		EndDate:            e.EndDate,
		Current:            e.Current,
		Description:        e.Description,
		TechnologiesString: JoinList(e.Technologies),
		SortOrder:          e.SortOrder,
	}
}
