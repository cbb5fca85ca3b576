package usecase

import (
	"context"
	"fmt"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/service"
)

// GetLenderStatsUseCase computes on-demand portfolio statistics over a
// lender's full application set.
type GetLenderStatsUseCase struct {
	appRepo    port.ApplicationRepository
	aggregator *service.LenderStatsAggregator
}

// NewGetLenderStatsUseCase wires dependencies.
func NewGetLenderStatsUseCase(
	appRepo port.ApplicationRepository,
	aggregator *service.LenderStatsAggregator,
) *GetLenderStatsUseCase {
	return &GetLenderStatsUseCase{
		appRepo:    appRepo,
		aggregator: aggregator,
	}
}

// Execute aggregates the lender's applications. A lender with no
// applications gets an all-zero result, not an error.
func (uc *GetLenderStatsUseCase) Execute(
	ctx context.Context,
	req dto.LenderStatsRequest,
) (dto.LenderStatsResponse, error) {
	if req.LenderID == "" {
		return dto.LenderStatsResponse{}, fmt.Errorf("%w: lender_id is required", ErrValidation)
	}

	apps, err := uc.appRepo.FindByLender(ctx, req.LenderID, port.ApplicationFilter{})
	if err != nil {
		return dto.LenderStatsResponse{}, fmt.Errorf("list lender applications: %w", err)
	}

	return toLenderStatsResponse(uc.aggregator.Aggregate(apps)), nil
}
