package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitApplicationRequest carries the data needed to submit a new loan application.
type SubmitApplicationRequest struct {
	MSMEID          string          `json:"msme_id"`
	LenderID        string          `json:"lender_id"`
	PolicyID        string          `json:"policy_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

// UpdateApplicationStatusRequest carries a lender's status decision.
type UpdateApplicationStatusRequest struct {
	ApplicationID  string          `json:"application_id"`
	Status         string          `json:"status"`
	LenderNotes    string          `json:"lender_notes"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}

// GetApplicationRequest identifies an application to retrieve.
type GetApplicationRequest struct {
	ApplicationID string `json:"application_id"`
}

// ListApplicationsRequest lists applications for one side of the marketplace.
// Status is an optional filter; SortBy/SortOrder default to newest first.
type ListApplicationsRequest struct {
	MSMEID    string `json:"msme_id,omitempty"`
	LenderID  string `json:"lender_id,omitempty"`
	Status    string `json:"status,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// MSMEDetailsRequest identifies the application whose applicant to inspect.
type MSMEDetailsRequest struct {
	ApplicationID string `json:"application_id"`
}

// LenderStatsRequest identifies the lender whose portfolio to aggregate.
type LenderStatsRequest struct {
	LenderID string `json:"lender_id"`
}

// PreviewPolicyFitRequest asks for a pre-application eligibility check
// against a policy, before a requested amount is known.
type PreviewPolicyFitRequest struct {
	PolicyID string `json:"policy_id"`
	MSMEID   string `json:"msme_id"`
}

// CreatePolicyRequest carries a lender's new policy definition.
// The camelCase threshold fields mirror the persisted policy document shape.
type CreatePolicyRequest struct {
	LenderID           string          `json:"lender_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	InterestRate       decimal.Decimal `json:"interestRate"`
	MaxAmount          decimal.Decimal `json:"maxAmount"`
	MinCreditScore     int             `json:"minCreditScore"`
	MinFinancialHealth string          `json:"minFinancialHealth"`
	MinVintageMonths   int             `json:"minVintageMonths"`
}

// UpdatePolicyRequest replaces the lender-editable fields of a policy.
type UpdatePolicyRequest struct {
	PolicyID           string          `json:"policy_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	InterestRate       decimal.Decimal `json:"interestRate"`
	MaxAmount          decimal.Decimal `json:"maxAmount"`
	MinCreditScore     int             `json:"minCreditScore"`
	MinFinancialHealth string          `json:"minFinancialHealth"`
	MinVintageMonths   int             `json:"minVintageMonths"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ApplicationResponse is the external representation of a loan application.
// Field names match the persisted document shape consumed by the dashboards.
type ApplicationResponse struct {
	ApplicationID   string                 `json:"application_id"`
	MSMEID          string                 `json:"msme_id"`
	LenderID        string                 `json:"lender_id"`
	PolicyID        string                 `json:"policy_id"`
	RequestedAmount decimal.Decimal        `json:"requested_amount"`
	CreditScore     int                    `json:"msme_credit_score"`
	FinancialHealth string                 `json:"msme_financial_health"`
	PolicyFitScore  int                    `json:"policy_fit_score"`
	FitDetails      valueobject.FitDetails `json:"fit_details"`
	Status          string                 `json:"status"`
	LenderNotes     string                 `json:"lender_notes"`
	ApprovedAmount  decimal.Decimal        `json:"approved_amount"`
	ApprovedAt      *time.Time             `json:"approved_at,omitempty"`
	RejectedAt      *time.Time             `json:"rejected_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	// MSMEInfo is populated only on lender-side listings.
	MSMEInfo *MSMEInfoResponse `json:"msme_info,omitempty"`
}

// MSMEInfoResponse is the applicant summary attached to lender-facing views.
type MSMEInfoResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	GSTIN                string `json:"gstin,omitempty"`
	MSMEType             string `json:"msme_type,omitempty"`
	Sector               string `json:"sector,omitempty"`
	Address              string `json:"address,omitempty"`
	BusinessVintageYears int    `json:"business_vintage_years"`
}

// SnapshotResponse is the external representation of a financial-health
// snapshot, exposed read-only to lenders reviewing an applicant.
type SnapshotResponse struct {
	MSMEID                 string          `json:"msme_id"`
	ReportID               string          `json:"report_id"`
	TotalInflow            decimal.Decimal `json:"total_inflow"`
	TotalOutflow           decimal.Decimal `json:"total_outflow"`
	NetCashflow            decimal.Decimal `json:"net_cashflow"`
	AverageBalance         decimal.Decimal `json:"average_balance"`
	MinBalance             decimal.Decimal `json:"min_balance"`
	MaxBalance             decimal.Decimal `json:"max_balance"`
	CashflowStabilityScore float64         `json:"cashflow_stability_score"`
	VolatilityScore        float64         `json:"volatility_score"`
	SeasonalityDetected    bool            `json:"seasonality_detected"`
	StressIndicators       []string        `json:"stress_indicators"`
	GeneratedAt            time.Time       `json:"generated_at"`
}

// MSMEDetailsResponse is the lender's combined view of an applicant: the
// profile, the latest financial health (nil when never analysed), and the
// application itself.
type MSMEDetailsResponse struct {
	User            *MSMEInfoResponse   `json:"user"`
	FinancialHealth *SnapshotResponse   `json:"financial_health"`
	Application     ApplicationResponse `json:"application"`
}

// PolicyResponse is the external representation of a lending policy.
type PolicyResponse struct {
	ID                 string          `json:"id"`
	LenderID           string          `json:"lender_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	InterestRate       decimal.Decimal `json:"interestRate"`
	MaxAmount          decimal.Decimal `json:"maxAmount"`
	MinCreditScore     int             `json:"minCreditScore"`
	MinFinancialHealth string          `json:"minFinancialHealth"`
	MinVintageMonths   int             `json:"minVintageMonths"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// FitPreviewResponse is the outcome of a pre-application fit check.
type FitPreviewResponse struct {
	PolicyID          string                 `json:"policy_id"`
	MSMEID            string                 `json:"msme_id"`
	PolicyFitScore    int                    `json:"policy_fit_score"`
	FitDetails        valueobject.FitDetails `json:"fit_details"`
	CalculatedScore   int                    `json:"calculated_credit_score"`
	CalculatedHealth  string                 `json:"calculated_health"`
	VintageMonths     int                    `json:"vintage_months"`
	SnapshotAvailable bool                   `json:"snapshot_available"`
}

// StatusStatsResponse is one per-status group of the lender statistics.
type StatusStatsResponse struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// LenderStatsResponse is the aggregate portfolio view for a lender.
type LenderStatsResponse struct {
	ByStatus          map[string]StatusStatsResponse `json:"by_status"`
	TotalApplications int                            `json:"total_applications"`
	TotalApproved     int                            `json:"total_approved"`
	TotalMoneyLent    decimal.Decimal                `json:"total_money_lent"`
}
