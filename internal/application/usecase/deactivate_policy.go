package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/event"
	"github.com/msmebridge/marketplace/internal/domain/port"
)

// DeactivatePolicyUseCase withdraws a policy from new-application
// discovery. Existing applications keep referencing it.
type DeactivatePolicyUseCase struct {
	policyRepo port.PolicyRepository
	publisher  port.EventPublisher
}

// NewDeactivatePolicyUseCase wires dependencies.
func NewDeactivatePolicyUseCase(
	policyRepo port.PolicyRepository,
	publisher port.EventPublisher,
) *DeactivatePolicyUseCase {
	return &DeactivatePolicyUseCase{
		policyRepo: policyRepo,
		publisher:  publisher,
	}
}

// Execute marks the policy inactive.
func (uc *DeactivatePolicyUseCase) Execute(ctx context.Context, policyID string) (dto.PolicyResponse, error) {
	if policyID == "" {
		return dto.PolicyResponse{}, fmt.Errorf("%w: policy_id is required", ErrValidation)
	}

	policy, err := uc.policyRepo.FindByID(ctx, policyID)
	if err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("load policy: %w", err)
	}

	policy = policy.Deactivate(time.Now().UTC())

	if err := uc.policyRepo.Save(ctx, policy); err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("save policy: %w", err)
	}

	deactivated := event.NewPolicyDeactivated(policy.ID(), policy.LenderID())
	if err := uc.publisher.Publish(ctx, deactivated); err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toPolicyResponse(policy), nil
}
