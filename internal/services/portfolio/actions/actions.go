// Package actions implements the mutating portfolio operations invoked by the
// admin panel. Every action returns a domain.Result; store failures never
// escape as errors.
package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/louisbranch/portfolio/internal/platform/logging"
	"github.com/louisbranch/portfolio/internal/platform/metrics"
	platformotel "github.com/louisbranch/portfolio/internal/platform/otel"
	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	"github.com/louisbranch/portfolio/internal/services/portfolio/domain"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Result messages. They double as message catalog keys.
const (
	MsgInvalidForm          = "Invalid form data"
	MsgSlugExists           = "slug already exists"
	MsgSlugExistsField      = "Slug already exists."
	MsgSlugCheckFailed      = "Failed to verify slug uniqueness."
	MsgTitleNeedsSlugChars  = "Title must contain letters or numbers to build a slug."
	MsgSlugRequired         = "This title cannot be turned into a slug. Enter a slug."
	MsgProjectCreated       = "Project created successfully."
	MsgProjectUpdated       = "Project updated successfully."
	MsgProjectDeleted       = "Project deleted successfully."
	MsgProjectNotFound      = "Project not found."
	MsgExperienceCreated    = "Experience created successfully."
	MsgExperienceUpdated    = "Experience updated successfully."
	MsgExperienceDeleted    = "Experience deleted successfully."
	MsgExperienceNotFound   = "Experience not found."
	MsgSkillCreated         = "Skill created successfully."
	MsgSkillUpdated         = "Skill updated successfully."
	MsgSkillDeleted         = "Skill deleted successfully."
	MsgSkillNotFound        = "Skill not found."
	msgUniqueFieldPrefix    = "A record with this "
	msgUniqueFieldTemplate  = msgUniqueFieldPrefix + "%s already exists."
	msgUnexpectedStoreError = "Unexpected store error."
)

// IsConflict reports whether a failed result message describes a uniqueness
// conflict.
func IsConflict(message string) bool {
	return message == MsgSlugExists || strings.HasPrefix(message, msgUniqueFieldPrefix)
}

// IsNotFound reports whether a failed result message describes a missing
// record.
func IsNotFound(message string) bool {
	switch message {
	case MsgProjectNotFound, MsgExperienceNotFound, MsgSkillNotFound:
		return true
	}
	return false
}

// Invalidator drops cached renderings of public pages after content changes.
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string)
}

// Deps wires the collaborators shared by all actions.
type Deps struct {
	Store       storage.Store
	Invalidator Invalidator
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Tracer      trace.Tracer
	NewID       func() string
}

// Actions groups the per-entity action sets.
type Actions struct {
	Projects    *Projects
	Experiences *Experiences
	Skills      *Skills
}

// New builds the action sets from deps.
func New(deps Deps) (*Actions, error) {
	if deps.Store == nil {
		return nil, errors.New("actions: store is required")
	}
	r := newRunner(deps)
	return &Actions{
		Projects:    &Projects{runner: r, store: deps.Store},
		Experiences: &Experiences{runner: r, store: deps.Store},
		Skills:      &Skills{runner: r, store: deps.Store},
	}, nil
}

type runner struct {
	invalidator Invalidator
	logger      *zap.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	newID       func() string
}

func newRunner(deps Deps) runner {
	r := runner{
		invalidator: deps.Invalidator,
		logger:      logging.OrNop(deps.Logger).Named("actions"),
		metrics:     deps.Metrics,
		tracer:      deps.Tracer,
		newID:       deps.NewID,
	}
	if r.tracer == nil {
		r.tracer = platformotel.Tracer("portfolio/actions")
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	return r
}

// start opens a span and a store deadline for one action.
func (r runner) start(ctx context.Context, entity, op string) (context.Context, trace.Span, context.CancelFunc) {
	ctx, span := r.tracer.Start(ctx, entity+"."+op, trace.WithAttributes(
		attribute.String("portfolio.entity", entity),
		attribute.String("portfolio.operation", op),
	))
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	return ctx, span, cancel
}

func (r runner) invalidate(ctx context.Context, paths ...string) {
	if r.invalidator == nil {
		return
	}
	// The mutation already happened; invalidation must not inherit its deadline.
	r.invalidator.Invalidate(context.WithoutCancel(ctx), paths...)
}

// finish records the outcome on span, metrics and logs.
func finish[F ~string](r runner, span trace.Span, entity, op string, result domain.Result[F], fields ...zap.Field) domain.Result[F] {
	defer span.End()
	span.SetAttributes(
		attribute.Bool("portfolio.success", result.Success),
		attribute.String("portfolio.message", result.Message),
	)
	if !result.Success {
		span.SetStatus(codes.Error, result.Message)
	}
	r.metrics.ObserveAction(entity, op, result.Success)

	fields = append(fields,
		zap.String("entity", entity),
		zap.String("operation", op),
		zap.Bool("success", result.Success),
	)
	if result.Success {
		r.logger.Info(result.Message, fields...)
	} else {
		r.logger.Debug(result.Message, fields...)
	}
	return result
}

func invalidForm[F ~string](errs domain.FieldErrors[F]) domain.Result[F] {
	return domain.Failed(MsgInvalidForm, errs)
}

func slugConflict[F ~string](slugField F) domain.Result[F] {
	errs := domain.FieldErrors[F]{}
	errs.Add(slugField, MsgSlugExistsField)
	return domain.Failed(MsgSlugExists, errs)
}

// persistFailure maps a store write error to a failed result.
//
// A unique violation on "slug" becomes the slug conflict when slugField is
// non-empty. Other unique violations name their columns, and columns that are
// schema fields are reported in the error map.
func persistFailure[F ~string](err error, slugField F, parse func(string) (F, bool), notFound string) domain.Result[F] {
	var violation *storage.UniqueViolation
	switch {
	case errors.As(err, &violation):
		if slugField != "" && violation.Has(string(slugField)) {
			return slugConflict(slugField)
		}
		if len(violation.Fields) == 0 {
			return domain.Failed[F](fmt.Sprintf(msgUniqueFieldTemplate, "value"), nil)
		}
		errs := domain.FieldErrors[F]{}
		for _, column := range violation.Fields {
			if field, ok := parse(column); ok {
				errs.Add(field, fmt.Sprintf(msgUniqueFieldTemplate, column))
			}
		}
		if errs.Empty() {
			errs = nil
		}
		return domain.Failed(fmt.Sprintf(msgUniqueFieldTemplate, strings.Join(violation.Fields, ", ")), errs)
	case errors.Is(err, storage.ErrNotFound):
		return domain.Failed[F](notFound, nil)
	case err == nil:
		return domain.Failed[F](msgUnexpectedStoreError, nil)
	default:
		return domain.Failed[F](err.Error(), nil)
	}
}

// lookupFailure maps a store read error during an update or delete.
func lookupFailure[F ~string](err error, notFound string) domain.Result[F] {
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Failed[F](notFound, nil)
	}
	return domain.Failed[F](err.Error(), nil)
}
