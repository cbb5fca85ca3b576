package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// FinancialHealthSnapshot – externally produced, consumed read-only
// ---------------------------------------------------------------------------

// FinancialHealthSnapshot is the most recent financial-health analysis result
// for an MSME, produced by the external sync/analysis pipeline. The scoring
// services treat it as an immutable input. The zero value is a valid snapshot
// and stands in for "no analysis available yet": the estimator scores it at
// the floor and the classifier rates it the neutral Fair.
type FinancialHealthSnapshot struct {
	MSMEID                 string
	ReportID               string
	TotalInflow            decimal.Decimal
	TotalOutflow           decimal.Decimal
	NetCashflow            decimal.Decimal
	AverageBalance         decimal.Decimal
	MinBalance             decimal.Decimal
	MaxBalance             decimal.Decimal
	CashflowStabilityScore float64
	VolatilityScore        float64
	SeasonalityDetected    bool
	StressIndicators       []string
	GeneratedAt            time.Time
}

// IsZero reports whether the snapshot is the no-data default.
func (s FinancialHealthSnapshot) IsZero() bool {
	return s.MSMEID == "" && s.ReportID == ""
}
