package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/clientpro/internal/domain"
)

var (
	ErrDuplicateNumero = errors.New("numero already used by another intervention")
	ErrClientInactive  = errors.New("client is inactive")
	ErrClientInUse     = errors.New("client still has interventions")
	ErrAmbiguousRef    = errors.New("reference matches more than one record")
)

// ValidationError reports every field that blocked a save. errors.Is sees
// through it to the sentinels behind the field messages.
type ValidationError struct {
	Fields map[string]string
	cause  error
}

func newValidationError(v domain.Violations, causes ...error) *ValidationError {
	all := append([]error{domain.ViolationCause(v)}, causes...)
	return &ValidationError{Fields: v, cause: errors.Join(all...)}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.cause }
