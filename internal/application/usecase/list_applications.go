package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// sortFields maps the API's sortBy values onto persisted columns. Only
// whitelisted fields reach the repository.
var sortFields = map[string]string{
	"created_at":       "created_at",
	"createdAt":        "created_at",
	"updated_at":       "updated_at",
	"updatedAt":        "updated_at",
	"requested_amount": "requested_amount",
	"approved_amount":  "approved_amount",
	"policy_fit_score": "policy_fit_score",
	"status":           "status",
}

// ListApplicationsUseCase lists applications for either side of the
// marketplace, newest first by default, with optional status filtering and
// sorting. Lender-side listings carry the applicant summary so a lender can
// review without a per-row profile fetch.
type ListApplicationsUseCase struct {
	appRepo   port.ApplicationRepository
	directory port.MSMEDirectory
	logger    *slog.Logger
}

// NewListApplicationsUseCase wires dependencies.
func NewListApplicationsUseCase(
	appRepo port.ApplicationRepository,
	directory port.MSMEDirectory,
	logger *slog.Logger,
) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{
		appRepo:   appRepo,
		directory: directory,
		logger:    logger,
	}
}

// ExecuteForMSME lists a borrower's applications.
func (uc *ListApplicationsUseCase) ExecuteForMSME(
	ctx context.Context,
	req dto.ListApplicationsRequest,
) ([]dto.ApplicationResponse, error) {
	if req.MSMEID == "" {
		return nil, fmt.Errorf("%w: msme_id is required", ErrValidation)
	}
	filter, err := listFilter(req)
	if err != nil {
		return nil, err
	}

	apps, err := uc.appRepo.FindByMSME(ctx, req.MSMEID, filter)
	if err != nil {
		return nil, fmt.Errorf("list MSME applications: %w", err)
	}
	return toApplicationResponses(apps), nil
}

// ExecuteForLender lists a lender's incoming applications, each enriched
// with the applicant's profile summary.
func (uc *ListApplicationsUseCase) ExecuteForLender(
	ctx context.Context,
	req dto.ListApplicationsRequest,
) ([]dto.ApplicationResponse, error) {
	if req.LenderID == "" {
		return nil, fmt.Errorf("%w: lender_id is required", ErrValidation)
	}
	filter, err := listFilter(req)
	if err != nil {
		return nil, err
	}

	apps, err := uc.appRepo.FindByLender(ctx, req.LenderID, filter)
	if err != nil {
		return nil, fmt.Errorf("list lender applications: %w", err)
	}

	out := toApplicationResponses(apps)
	profiles := make(map[string]dto.MSMEInfoResponse)
	for i, app := range apps {
		info, ok := profiles[app.MSMEID()]
		if !ok {
			info = uc.applicantInfo(ctx, app.MSMEID())
			profiles[app.MSMEID()] = info
		}
		out[i].MSMEInfo = &info
	}
	return out, nil
}

// applicantInfo resolves a profile summary, degrading to a placeholder so a
// deleted or unsynced user never breaks the lender's listing.
func (uc *ListApplicationsUseCase) applicantInfo(ctx context.Context, msmeID string) dto.MSMEInfoResponse {
	profile, err := uc.directory.FindProfile(ctx, msmeID)
	if err != nil {
		uc.logger.WarnContext(ctx, "applicant profile lookup failed",
			"msme_id", msmeID,
			"error", err,
		)
		return dto.MSMEInfoResponse{ID: msmeID, Name: "Unknown MSME"}
	}
	return toMSMEInfoResponse(profile)
}

func listFilter(req dto.ListApplicationsRequest) (port.ApplicationFilter, error) {
	var filter port.ApplicationFilter

	if req.Status != "" {
		status, err := valueobject.NewApplicationStatus(req.Status)
		if err != nil {
			return port.ApplicationFilter{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		filter.Status = status
	}

	if req.SortBy != "" {
		column, ok := sortFields[req.SortBy]
		if !ok {
			return port.ApplicationFilter{}, fmt.Errorf("%w: unknown sort field %q", ErrValidation, req.SortBy)
		}
		filter.SortField = column
	}
	filter.SortAsc = req.SortOrder == "asc"

	return filter, nil
}
