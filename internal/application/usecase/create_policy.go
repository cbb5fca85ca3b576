package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/event"
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// CreatePolicyUseCase publishes a new lending policy for a lender.
type CreatePolicyUseCase struct {
	policyRepo port.PolicyRepository
	publisher  port.EventPublisher
}

// NewCreatePolicyUseCase wires dependencies.
func NewCreatePolicyUseCase(
	policyRepo port.PolicyRepository,
	publisher port.EventPublisher,
) *CreatePolicyUseCase {
	return &CreatePolicyUseCase{
		policyRepo: policyRepo,
		publisher:  publisher,
	}
}

// Execute validates and persists the new policy.
func (uc *CreatePolicyUseCase) Execute(
	ctx context.Context,
	req dto.CreatePolicyRequest,
) (dto.PolicyResponse, error) {
	health, err := valueobject.NewHealthRating(req.MinFinancialHealth)
	if err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	policy, err := model.NewPolicy(
		req.LenderID, req.Name, req.Description,
		req.InterestRate, req.MaxAmount,
		req.MinCreditScore, health, req.MinVintageMonths,
		time.Now().UTC(),
	)
	if err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := uc.policyRepo.Save(ctx, policy); err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("save policy: %w", err)
	}

	created := event.NewPolicyCreated(
		policy.ID(), policy.LenderID(), policy.Name(),
		policy.MaxAmount(), policy.MinCreditScore(),
	)
	if err := uc.publisher.Publish(ctx, created); err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toPolicyResponse(policy), nil
}
