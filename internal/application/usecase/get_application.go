package usecase

import (
	"context"
	"fmt"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/port"
)

// GetApplicationUseCase retrieves a single application by its id.
type GetApplicationUseCase struct {
	appRepo port.ApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.ApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// Execute fetches the application or returns a not-found error.
func (uc *GetApplicationUseCase) Execute(
	ctx context.Context,
	req dto.GetApplicationRequest,
) (dto.ApplicationResponse, error) {
	if req.ApplicationID == "" {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: application_id is required", ErrValidation)
	}

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load application: %w", err)
	}
	return toApplicationResponse(app), nil
}
