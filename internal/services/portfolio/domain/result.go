package domain

// Result is the uniform outcome of a mutating action.
//
// Errors is nil on success. On failure it maps schema fields to their
// messages and may be empty for failures not tied to a field.
type Result[F ~string] struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Errors  map[F][]string `json:"errors"`
}

// Succeeded builds a successful result.
func Succeeded[F ~string](message string) Result[F] {
	return Result[F]{Success: true, Message: message}
}

// Failed builds a failed result. A nil errs leaves Errors empty.
func Failed[F ~string](message string, errs FieldErrors[F]) Result[F] {
	return Result[F]{Message: message, Errors: errs}
}

// FieldErrors accumulates validation messages per field.
type FieldErrors[F ~string] map[F][]string

// Add appends msg to field.
func (e FieldErrors[F]) Add(field F, msg string) {
	e[field] = append(e[field], msg)
}

// Empty reports whether no field has messages.
func (e FieldErrors[F]) Empty() bool {
	return len(e) == 0
}

// First returns the first message recorded for field.
func (r Result[F]) First(field F) string {
	if msgs := r.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
