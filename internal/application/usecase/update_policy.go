package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// UpdatePolicyUseCase replaces the lender-editable terms of a policy.
// The scoring snapshot stored on existing applications is unaffected.
type UpdatePolicyUseCase struct {
	policyRepo port.PolicyRepository
}

// NewUpdatePolicyUseCase wires dependencies.
func NewUpdatePolicyUseCase(policyRepo port.PolicyRepository) *UpdatePolicyUseCase {
	return &UpdatePolicyUseCase{policyRepo: policyRepo}
}

// Execute applies the update.
func (uc *UpdatePolicyUseCase) Execute(
	ctx context.Context,
	req dto.UpdatePolicyRequest,
) (dto.PolicyResponse, error) {
	if req.PolicyID == "" {
		return dto.PolicyResponse{}, fmt.Errorf("%w: policy_id is required", ErrValidation)
	}

	health, err := valueobject.NewHealthRating(req.MinFinancialHealth)
	if err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	policy, err := uc.policyRepo.FindByID(ctx, req.PolicyID)
	if err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("load policy: %w", err)
	}

	policy, err = policy.UpdateTerms(
		req.Name, req.Description,
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

	return toPolicyResponse(policy), nil
}
