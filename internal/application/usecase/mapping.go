package usecase

import (
	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/service"
)

func toApplicationResponse(app model.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ApplicationID:   app.ID(),
		MSMEID:          app.MSMEID(),
		LenderID:        app.LenderID(),
		PolicyID:        app.PolicyID(),
		RequestedAmount: app.RequestedAmount(),
		CreditScore:     app.CreditScore(),
		FinancialHealth: app.FinancialHealth().String(),
		PolicyFitScore:  app.PolicyFitScore(),
		FitDetails:      app.FitDetails(),
		Status:          app.Status().String(),
		LenderNotes:     app.LenderNotes(),
		ApprovedAmount:  app.ApprovedAmount(),
		ApprovedAt:      app.ApprovedAt(),
		RejectedAt:      app.RejectedAt(),
		CreatedAt:       app.CreatedAt(),
		UpdatedAt:       app.UpdatedAt(),
	}
}

func toApplicationResponses(apps []model.Application) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	return out
}

func toMSMEInfoResponse(p model.MSMEProfile) dto.MSMEInfoResponse {
	return dto.MSMEInfoResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Email:                p.Email,
		Phone:                p.Phone,
		GSTIN:                p.GSTIN,
		MSMEType:             p.MSMEType,
		Sector:               p.Sector,
		Address:              p.Address,
		BusinessVintageYears: p.BusinessVintageYears,
	}
}

func toSnapshotResponse(s model.FinancialHealthSnapshot) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		MSMEID:                 s.MSMEID,
		ReportID:               s.ReportID,
		TotalInflow:            s.TotalInflow,
		TotalOutflow:           s.TotalOutflow,
		NetCashflow:            s.NetCashflow,
		AverageBalance:         s.AverageBalance,
		MinBalance:             s.MinBalance,
		MaxBalance:             s.MaxBalance,
		CashflowStabilityScore: s.CashflowStabilityScore,
		VolatilityScore:        s.VolatilityScore,
		SeasonalityDetected:    s.SeasonalityDetected,
		StressIndicators:       s.StressIndicators,
		GeneratedAt:            s.GeneratedAt,
	}
}

func toPolicyResponse(p model.Policy) dto.PolicyResponse {
	return dto.PolicyResponse{
		ID:                 p.ID(),
		LenderID:           p.LenderID(),
		Name:               p.Name(),
		Description:        p.Description(),
		InterestRate:       p.InterestRate(),
		MaxAmount:          p.MaxAmount(),
		MinCreditScore:     p.MinCreditScore(),
		MinFinancialHealth: p.MinFinancialHealth().String(),
		MinVintageMonths:   p.MinVintageMonths(),
		IsActive:           p.IsActive(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func toPolicyResponses(policies []model.Policy) []dto.PolicyResponse {
	out := make([]dto.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, toPolicyResponse(p))
	}
	return out
}

func toLenderStatsResponse(stats service.LenderStats) dto.LenderStatsResponse {
	byStatus := make(map[string]dto.StatusStatsResponse, len(stats.ByStatus))
	for status, group := range stats.ByStatus {
		byStatus[status] = dto.StatusStatsResponse{
			Count:       group.Count,
			TotalAmount: group.TotalAmount,
		}
	}
	return dto.LenderStatsResponse{
		ByStatus:          byStatus,
		TotalApplications: stats.TotalApplications,
		TotalApproved:     stats.TotalApproved,
		TotalMoneyLent:    stats.TotalMoneyLent,
	}
}
