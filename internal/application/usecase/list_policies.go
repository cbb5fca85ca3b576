package usecase

import (
	"context"
	"fmt"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/port"
)

// ListPoliciesUseCase serves the two policy listings: a lender's own
// policies, and the marketplace-wide active set MSMEs browse.
type ListPoliciesUseCase struct {
	policyRepo port.PolicyRepository
}

// NewListPoliciesUseCase wires dependencies.
func NewListPoliciesUseCase(policyRepo port.PolicyRepository) *ListPoliciesUseCase {
	return &ListPoliciesUseCase{policyRepo: policyRepo}
}

// ExecuteForLender lists a lender's policies, optionally active only.
func (uc *ListPoliciesUseCase) ExecuteForLender(
	ctx context.Context,
	lenderID string,
	activeOnly bool,
) ([]dto.PolicyResponse, error) {
	if lenderID == "" {
		return nil, fmt.Errorf("%w: lender_id is required", ErrValidation)
	}

	policies, err := uc.policyRepo.FindByLender(ctx, lenderID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list lender policies: %w", err)
	}
	return toPolicyResponses(policies), nil
}

// ExecuteActive lists every policy open for new applications.
func (uc *ListPoliciesUseCase) ExecuteActive(ctx context.Context) ([]dto.PolicyResponse, error) {
	policies, err := uc.policyRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active policies: %w", err)
	}
	return toPolicyResponses(policies), nil
}

// GetPolicyUseCase retrieves a single policy by id.
type GetPolicyUseCase struct {
	policyRepo port.PolicyRepository
}

// NewGetPolicyUseCase wires dependencies.
func NewGetPolicyUseCase(policyRepo port.PolicyRepository) *GetPolicyUseCase {
	return &GetPolicyUseCase{policyRepo: policyRepo}
}

// Execute fetches the policy or returns a not-found error.
func (uc *GetPolicyUseCase) Execute(ctx context.Context, policyID string) (dto.PolicyResponse, error) {
	if policyID == "" {
		return dto.PolicyResponse{}, fmt.Errorf("%w: policy_id is required", ErrValidation)
	}

	policy, err := uc.policyRepo.FindByID(ctx, policyID)
	if err != nil {
		return dto.PolicyResponse{}, fmt.Errorf("load policy: %w", err)
	}
	return toPolicyResponse(policy), nil
}
