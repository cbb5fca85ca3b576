package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/port"
)

// GetMSMEDetailsUseCase assembles the lender's review view of an applicant:
// the profile behind an application, the latest financial-health snapshot,
// and the application itself. Profile and snapshot are best-effort; only the
// application is required to exist.
type GetMSMEDetailsUseCase struct {
	appRepo   port.ApplicationRepository
	directory port.MSMEDirectory
	snapshots port.SnapshotRepository
	logger    *slog.Logger
}

// NewGetMSMEDetailsUseCase wires dependencies.
func NewGetMSMEDetailsUseCase(
	appRepo port.ApplicationRepository,
	directory port.MSMEDirectory,
	snapshots port.SnapshotRepository,
	logger *slog.Logger,
) *GetMSMEDetailsUseCase {
	return &GetMSMEDetailsUseCase{
		appRepo:   appRepo,
		directory: directory,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Execute loads the applicant view for one application.
func (uc *GetMSMEDetailsUseCase) Execute(
	ctx context.Context,
	req dto.MSMEDetailsRequest,
) (dto.MSMEDetailsResponse, error) {
	if req.ApplicationID == "" {
		return dto.MSMEDetailsResponse{}, fmt.Errorf("%w: application_id is required", ErrValidation)
	}

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.MSMEDetailsResponse{}, fmt.Errorf("load application: %w", err)
	}

	resp := dto.MSMEDetailsResponse{Application: toApplicationResponse(app)}

	profile, err := uc.directory.FindProfile(ctx, app.MSMEID())
	switch {
	case errors.Is(err, port.ErrNotFound):
		// The user may have been removed after applying; the lender still
		// sees the application and whatever health data remains.
		uc.logger.WarnContext(ctx, "applicant profile missing",
			"application_id", app.ID(),
			"msme_id", app.MSMEID(),
		)
	case err != nil:
		return dto.MSMEDetailsResponse{}, fmt.Errorf("load MSME profile: %w", err)
	default:
		info := toMSMEInfoResponse(profile)
		resp.User = &info
	}

	snapshot, found, err := uc.snapshots.FindLatestByMSME(ctx, app.MSMEID())
	if err != nil {
		return dto.MSMEDetailsResponse{}, fmt.Errorf("load financial snapshot: %w", err)
	}
	if found {
		health := toSnapshotResponse(snapshot)
		resp.FinancialHealth = &health
	}

	return resp, nil
}
