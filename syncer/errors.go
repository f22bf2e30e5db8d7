package syncer

import (
	"fmt"

	"github.com/goliatone/go-fpl-sync/cache"
	"github.com/goliatone/go-fpl-sync/domain"
	"github.com/goliatone/go-fpl-sync/internal/fplapi"
	"github.com/goliatone/go-fpl-sync/repository"
	"github.com/goliatone/go-fpl-sync/schema"
)

// Kind tags a ServiceError with the layer its cause escaped from.
type Kind string

const (
	KindIntegration Kind = "INTEGRATION_ERROR"
	KindValidation  Kind = "VALIDATION_ERROR"
	KindNotFound    Kind = "NOT_FOUND"
	KindPersistence Kind = "PERSISTENCE_ERROR"
	KindCache       Kind = "CACHE_ERROR"
	KindDomain      Kind = "DOMAIN_ERROR"
)

// ServiceError is the only error kind that crosses the pipeline's outer
// boundary. The originating error is always preserved as the cause; no layer
// may swallow an inner error without a documented fallback.
type ServiceError struct {
	Kind     Kind
	Workflow string
	Entity   string
	Cause    error
}

func (e *ServiceError) Error() string {
	if e.Workflow != "" {
		return fmt.Sprintf("workflow %s: %s sync [%s]: %v", e.Workflow, e.Entity, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s read [%s]: %v", e.Entity, e.Kind, e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// DomainError reports a business-rule violation inside a workflow, distinct
// from a mapping failure of a single record.
type DomainError struct {
	Entity string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

// Translation functions. Each inner error kind has exactly one path into a
// ServiceError; translation is one-directional and total.

func fromAPI(workflow, entity string, err *fplapi.APIError) *ServiceError {
	return &ServiceError{Kind: KindIntegration, Workflow: workflow, Entity: entity, Cause: err}
}

func fromMapping(workflow, entity string, err *domain.MappingError) *ServiceError {
	return &ServiceError{Kind: KindIntegration, Workflow: workflow, Entity: entity, Cause: err}
}

func fromValidation(workflow, entity string, err *schema.ValidationError) *ServiceError {
	return &ServiceError{Kind: KindValidation, Workflow: workflow, Entity: entity, Cause: err}
}

func fromPersistence(workflow, entity string, err *repository.PersistenceError) *ServiceError {
	return &ServiceError{Kind: KindPersistence, Workflow: workflow, Entity: entity, Cause: err}
}

func fromNotFound(workflow, entity string, err *repository.NotFoundError) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Workflow: workflow, Entity: entity, Cause: err}
}

func fromCache(workflow, entity string, err *cache.CacheError) *ServiceError {
	return &ServiceError{Kind: KindCache, Workflow: workflow, Entity: entity, Cause: err}
}

func fromDomain(workflow, entity string, err *DomainError) *ServiceError {
	return &ServiceError{Kind: KindDomain, Workflow: workflow, Entity: entity, Cause: err}
}
