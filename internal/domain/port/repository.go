package port

import (
	"context"
	"errors"

	"github.com/msmebridge/marketplace/internal/domain/event"
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// ErrNotFound is returned when a referenced policy, profile, snapshot or
// application does not exist. Callers must not treat it as a silent no-op.
var ErrNotFound = errors.New("not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationFilter narrows and orders application listings.
type ApplicationFilter struct {
	// Status filters to a single lifecycle status when non-zero.
	Status valueobject.ApplicationStatus
	// SortField names the persisted column to order by. Empty means
	// created_at; callers validate against the sortable-field whitelist
	// before it reaches SQL.
	SortField string
	// SortAsc orders ascending; the default is newest first.
	SortAsc bool
}

// ApplicationRepository persists and retrieves loan applications.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.Application) error
	// Update applies a status transition as a single read-modify-write
	// against the persisted row keyed by application id.
	Update(ctx context.Context, app model.Application) error
	FindByID(ctx context.Context, applicationID string) (model.Application, error)
	FindByMSME(ctx context.Context, msmeID string, filter ApplicationFilter) ([]model.Application, error)
	FindByLender(ctx context.Context, lenderID string, filter ApplicationFilter) ([]model.Application, error)
}

// ApplicationIDSource hands out the next human-readable application id
// (APP + 6-digit zero-padded sequence) from a monotonic source.
type ApplicationIDSource interface {
	NextApplicationID(ctx context.Context) (string, error)
}

// PolicyRepository persists and retrieves lender policies.
type PolicyRepository interface {
	Save(ctx context.Context, p model.Policy) error
	FindByID(ctx context.Context, id string) (model.Policy, error)
	FindByLender(ctx context.Context, lenderID string, activeOnly bool) ([]model.Policy, error)
	// FindActive lists policies open for new-application discovery.
	// Deactivated policies stay retrievable by id for existing applications.
	FindActive(ctx context.Context) ([]model.Policy, error)
}

// SnapshotRepository retrieves financial-health snapshots produced by the
// external sync pipeline. FindLatestByMSME returns found=false, not an
// error, when the MSME has no snapshot yet.
type SnapshotRepository interface {
	FindLatestByMSME(ctx context.Context, msmeID string) (model.FinancialHealthSnapshot, bool, error)
}

// MSMEDirectory looks up borrower profiles owned by the identity system.
type MSMEDirectory interface {
	FindProfile(ctx context.Context, msmeID string) (model.MSMEProfile, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
