package service

import (
	"github.com/shopspring/decimal"

	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LenderStatsAggregator – on-demand portfolio statistics
// ---------------------------------------------------------------------------

// StatusStats holds the per-status breakdown of a lender's applications.
// TotalAmount sums the requested amount for every group, including approved;
// the headline money-lent figure sums approved amounts instead.
type StatusStats struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// LenderStats is the derived, non-persisted statistics view for a lender.
type LenderStats struct {
	ByStatus          map[string]StatusStats `json:"by_status"`
	TotalApplications int                    `json:"total_applications"`
	TotalApproved     int                    `json:"total_approved"`
	TotalMoneyLent    decimal.Decimal        `json:"total_money_lent"`
}

// LenderStatsAggregator groups a lender's applications by status. It is pure
// and deterministic over its input set; an empty input yields all zeros.
type LenderStatsAggregator struct{}

// NewLenderStatsAggregator returns a new aggregator instance.
func NewLenderStatsAggregator() *LenderStatsAggregator {
	return &LenderStatsAggregator{}
}

// Aggregate computes the per-status counts and sums for the given set.
func (a *LenderStatsAggregator) Aggregate(applications []model.Application) LenderStats {
	stats := LenderStats{
		ByStatus:       make(map[string]StatusStats),
		TotalMoneyLent: decimal.Zero,
	}

	for _, app := range applications {
		key := app.Status().String()
		group := stats.ByStatus[key]
		if group.Count == 0 {
			group.TotalAmount = decimal.Zero
		}
		group.Count++
		group.TotalAmount = group.TotalAmount.Add(app.RequestedAmount())
		stats.ByStatus[key] = group

		stats.TotalApplications++

		if app.Status().Equal(valueobject.ApplicationStatusApproved) {
			stats.TotalApproved++
			stats.TotalMoneyLent = stats.TotalMoneyLent.Add(app.ApprovedAmount())
		}
	}

	return stats
}
