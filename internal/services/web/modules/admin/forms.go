package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	apperrors "github.com/louisbranch/portfolio/internal/services/web/platform/errors"
)

// maxBodyBytes caps one form or JSON submission.
const maxBodyBytes = 1 << 20

// decodeInput reads a JSON body or a url-encoded form into an input. Both go
// through fromForm, so a wrongly typed JSON value fails schema validation on
// its field instead of rejecting the whole body.
func decodeInput[I any](w http.ResponseWriter, r *http.Request, fromForm func(url.Values) I) (I, error) {
	var in I
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if isJSONBody(r) {
		values, err := jsonValues(r.Body)
		if err != nil {
			return in, decodeError(err)
		}
		return fromForm(values), nil
	}
	if err := r.ParseForm(); err != nil {
		return in, decodeError(err)
	}
	return fromForm(r.PostForm), nil
}

// jsonValues flattens a JSON object into form values. Scalars keep their
// literal text, arrays of scalars join into a comma list and null is absent.
// Nested objects keep their raw text and fail validation downstream.
func jsonValues(body io.Reader) (url.Values, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("json body must be an object")
	}
	values := url.Values{}
	for name, raw := range fields {
		var v any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		switch typed := v.(type) {
		case nil:
		case []any:
			values.Set(name, jsonList(typed, raw))
		default:
			text, ok := jsonScalar(typed)
			if !ok {
				text = string(raw)
			}
			values.Set(name, text)
		}
	}
	return values, nil
}

func jsonList(items []any, raw json.RawMessage) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := jsonScalar(item)
		if !ok {
			return string(raw)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", ")
}

func jsonScalar(v any) (string, bool) {
	switch typed := v.(type) {
	case string:
		return typed, true
	case json.Number:
		return typed.String(), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

func isJSONBody(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.EK(apperrors.KindTooLarge, "admin.form.too_large", "request body too large")
	}
	return apperrors.EK(apperrors.KindInvalidInput, "admin.form.malformed", "malformed request body")
}

func projectFromForm(v url.Values) domain.ProjectInput {
	return domain.ProjectInput{
		Title:               v.Get(string(domain.ProjectTitle)),
		Slug:                v.Get(string(domain.ProjectSlug)),
		ShortDescription:    v.Get(string(domain.ProjectShortDescription)),
		Description:         v.Get(string(domain.ProjectDescription)),
		TechnologiesString:  v.Get(string(domain.ProjectTechnologies)),
		FeaturesString:      v.Get(string(domain.ProjectFeatures)),
		CoverImage:          v.Get(string(domain.ProjectCoverImage)),
		DetailsImagesString: v.Get(string(domain.ProjectDetailsImages)),
		GithubURL:           v.Get(string(domain.ProjectGithubURL)),
		LiveURL:             v.Get(string(domain.ProjectLiveURL)),
		Featured:            formBool(v, string(domain.ProjectFeatured)),
		SortOrder:           formInt(v, string(domain.ProjectSortOrder), -1),
	}
}

func experienceFromForm(v url.Values) domain.ExperienceInput {
	return domain.ExperienceInput{
		Company:            v.Get(string(domain.ExperienceCompany)),
		Role:               v.Get(string(domain.ExperienceRole)),
		Location:           v.Get(string(domain.ExperienceLocation)),
		StartDate:          v.Get(string(domain.ExperienceStartDate)),
		EndDate:            v.Get(string(domain.ExperienceEndDate)),
		Current:            formBool(v, string(domain.ExperienceCurrent)),
		Description:        v.Get(string(domain.ExperienceDescription)),
		TechnologiesString: v.Get(string(domain.ExperienceTechnologies)),
		SortOrder:          formInt(v, string(domain.ExperienceSortOrder), -1),
	}
}

func skillFromForm(v url.Values) domain.SkillInput {
	return domain.SkillInput{
		Name:      v.Get(string(domain.SkillName)),
		Category:  v.Get(string(domain.SkillCategory)),
		Level:     formInt(v, string(domain.SkillLevel), 0),
		SortOrder: formInt(v, string(domain.SkillSortOrder), -1),
	}
}

func formBool(v url.Values, name string) bool {
	switch strings.ToLower(strings.TrimSpace(v.Get(name))) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// formInt parses an integer field. Empty means zero; anything unparseable
// becomes invalid so schema validation reports it on the field.
func formInt(v url.Values, name string, invalid int) int {
	raw := strings.TrimSpace(v.Get(name))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return invalid
	}
	return n
}
