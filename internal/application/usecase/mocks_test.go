package usecase

import (
	"context"
	"fmt"

	"github.com/msmebridge/marketplace/internal/domain/event"
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/port"
)

// Mock implementations with overridable behavior per test.

type mockApplicationRepo struct {
	saveFn         func(ctx context.Context, app model.Application) error
	updateFn       func(ctx context.Context, app model.Application) error
	findByIDFn     func(ctx context.Context, id string) (model.Application, error)
	findByMSMEFn   func(ctx context.Context, msmeID string, f port.ApplicationFilter) ([]model.Application, error)
	findByLenderFn func(ctx context.Context, lenderID string, f port.ApplicationFilter) ([]model.Application, error)

	saved   []model.Application
	updated []model.Application
}

func (m *mockApplicationRepo) Save(ctx context.Context, app model.Application) error {
	m.saved = append(m.saved, app)
	if m.saveFn != nil {
		return m.saveFn(ctx, app)
	}
	return nil
}

func (m *mockApplicationRepo) Update(ctx context.Context, app model.Application) error {
	m.updated = append(m.updated, app)
	if m.updateFn != nil {
		return m.updateFn(ctx, app)
	}
	return nil
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id string) (model.Application, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return model.Application{}, fmt.Errorf("application %s: %w", id, port.ErrNotFound)
}

func (m *mockApplicationRepo) FindByMSME(ctx context.Context, msmeID string, f port.ApplicationFilter) ([]model.Application, error) {
	if m.findByMSMEFn != nil {
		return m.findByMSMEFn(ctx, msmeID, f)
	}
	return nil, nil
}

func (m *mockApplicationRepo) FindByLender(ctx context.Context, lenderID string, f port.ApplicationFilter) ([]model.Application, error) {
	if m.findByLenderFn != nil {
		return m.findByLenderFn(ctx, lenderID, f)
	}
	return nil, nil
}

type mockPolicyRepo struct {
	saveFn       func(ctx context.Context, p model.Policy) error
	findByIDFn   func(ctx context.Context, id string) (model.Policy, error)
	findByLender func(ctx context.Context, lenderID string, activeOnly bool) ([]model.Policy, error)
	findActiveFn func(ctx context.Context) ([]model.Policy, error)

	saved []model.Policy
}

func (m *mockPolicyRepo) Save(ctx context.Context, p model.Policy) error {
	m.saved = append(m.saved, p)
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}

func (m *mockPolicyRepo) FindByID(ctx context.Context, id string) (model.Policy, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return model.Policy{}, fmt.Errorf("policy %s: %w", id, port.ErrNotFound)
}

func (m *mockPolicyRepo) FindByLender(ctx context.Context, lenderID string, activeOnly bool) ([]model.Policy, error) {
	if m.findByLender != nil {
		return m.findByLender(ctx, lenderID, activeOnly)
	}
	return nil, nil
}

func (m *mockPolicyRepo) FindActive(ctx context.Context) ([]model.Policy, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx)
	}
	return nil, nil
}

type mockSnapshotRepo struct {
	findLatestFn func(ctx context.Context, msmeID string) (model.FinancialHealthSnapshot, bool, error)
}

func (m *mockSnapshotRepo) FindLatestByMSME(ctx context.Context, msmeID string) (model.FinancialHealthSnapshot, bool, error) {
	if m.findLatestFn != nil {
		return m.findLatestFn(ctx, msmeID)
	}
	return model.FinancialHealthSnapshot{}, false, nil
}

type mockDirectory struct {
	findProfileFn func(ctx context.Context, msmeID string) (model.MSMEProfile, error)
}

func (m *mockDirectory) FindProfile(ctx context.Context, msmeID string) (model.MSMEProfile, error) {
	if m.findProfileFn != nil {
		return m.findProfileFn(ctx, msmeID)
	}
	return model.MSMEProfile{}, fmt.Errorf("MSME user %s: %w", msmeID, port.ErrNotFound)
}

type mockIDSource struct {
	nextFn func(ctx context.Context) (string, error)
}

func (m *mockIDSource) NextApplicationID(ctx context.Context) (string, error) {
	if m.nextFn != nil {
		return m.nextFn(ctx)
	}
	return "APP000001", nil
}

type mockPublisher struct {
	publishFn func(ctx context.Context, events ...event.DomainEvent) error
	published []event.DomainEvent
}

func (m *mockPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.published = append(m.published, events...)
	if m.publishFn != nil {
		return m.publishFn(ctx, events...)
	}
	return nil
}
