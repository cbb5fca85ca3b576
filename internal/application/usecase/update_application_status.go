package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// UpdateApplicationStatusUseCase applies a lender's status decision to an
// application. The transition is persisted as a single read-modify-write
// keyed by application id; concurrent reviewers race last-write-wins.
type UpdateApplicationStatusUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
}

// NewUpdateApplicationStatusUseCase wires dependencies.
func NewUpdateApplicationStatusUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
) *UpdateApplicationStatusUseCase {
	return &UpdateApplicationStatusUseCase{
		appRepo:   appRepo,
		publisher: publisher,
	}
}

// Execute validates the target status, runs the lifecycle transition, and
// persists the result.
func (uc *UpdateApplicationStatusUseCase) Execute(
	ctx context.Context,
	req dto.UpdateApplicationStatusRequest,
) (dto.ApplicationResponse, error) {
	if req.ApplicationID == "" {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: application_id is required", ErrValidation)
	}

	status, err := valueobject.NewApplicationStatus(req.Status)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load application: %w", err)
	}

	app, err = app.SetStatus(status, req.LenderNotes, req.ApprovedAmount, time.Now().UTC())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("transition to %s: %w", status, err)
	}

	if err := uc.appRepo.Update(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("update application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
