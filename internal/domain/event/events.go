package event

import (
	"github.com/shopspring/decimal"

	"github.com/msmebridge/marketplace/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Application events
// ---------------------------------------------------------------------------

// ApplicationSubmitted is raised when an MSME submits a new loan application.
// It carries the scoring snapshot fixed at submission time.
type ApplicationSubmitted struct {
	events.BaseEvent
	MSMEID          string          `json:"msme_id"`
	LenderID        string          `json:"lender_id"`
	PolicyID        string          `json:"policy_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	CreditScore     int             `json:"msme_credit_score"`
	FinancialHealth string          `json:"msme_financial_health"`
	PolicyFitScore  int             `json:"policy_fit_score"`
}

func NewApplicationSubmitted(
	applicationID, msmeID, lenderID, policyID string,
	requestedAmount decimal.Decimal,
	creditScore int, financialHealth string, policyFitScore int,
) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:       events.NewBaseEvent("marketplace.application.submitted", applicationID, "Application"),
		MSMEID:          msmeID,
		LenderID:        lenderID,
		PolicyID:        policyID,
		RequestedAmount: requestedAmount,
		CreditScore:     creditScore,
		FinancialHealth: financialHealth,
		PolicyFitScore:  policyFitScore,
	}
}

// ApplicationStatusChanged is raised on any lifecycle transition that is not
// a decision (for example pending -> reviewing).
type ApplicationStatusChanged struct {
	events.BaseEvent
	LenderID       string `json:"lender_id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
}

func NewApplicationStatusChanged(applicationID, lenderID, previous, current string) ApplicationStatusChanged {
	return ApplicationStatusChanged{
		BaseEvent:      events.NewBaseEvent("marketplace.application.status_changed", applicationID, "Application"),
		LenderID:       lenderID,
		PreviousStatus: previous,
		Status:         current,
	}
}

// ApplicationApproved is raised when a lender approves an application.
type ApplicationApproved struct {
	events.BaseEvent
	MSMEID         string          `json:"msme_id"`
	LenderID       string          `json:"lender_id"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}

func NewApplicationApproved(applicationID, msmeID, lenderID string, approvedAmount decimal.Decimal) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent:      events.NewBaseEvent("marketplace.application.approved", applicationID, "Application"),
		MSMEID:         msmeID,
		LenderID:       lenderID,
		ApprovedAmount: approvedAmount,
	}
}

// ApplicationRejected is raised when a lender rejects an application.
type ApplicationRejected struct {
	events.BaseEvent
	MSMEID   string `json:"msme_id"`
	LenderID string `json:"lender_id"`
	Notes    string `json:"lender_notes"`
}

func NewApplicationRejected(applicationID, msmeID, lenderID, notes string) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent: events.NewBaseEvent("marketplace.application.rejected", applicationID, "Application"),
		MSMEID:    msmeID,
		LenderID:  lenderID,
		Notes:     notes,
	}
}

// ---------------------------------------------------------------------------
// Policy events
// ---------------------------------------------------------------------------

// PolicyCreated is raised when a lender publishes a new lending policy.
type PolicyCreated struct {
	events.BaseEvent
	LenderID       string          `json:"lender_id"`
	Name           string          `json:"name"`
	MaxAmount      decimal.Decimal `json:"max_amount"`
	MinCreditScore int             `json:"min_credit_score"`
}

func NewPolicyCreated(policyID, lenderID, name string, maxAmount decimal.Decimal, minCreditScore int) PolicyCreated {
	return PolicyCreated{
		BaseEvent:      events.NewBaseEvent("marketplace.policy.created", policyID, "Policy"),
		LenderID:       lenderID,
		Name:           name,
		MaxAmount:      maxAmount,
		MinCreditScore: minCreditScore,
	}
}

// PolicyDeactivated is raised when a lender withdraws a policy from discovery.
type PolicyDeactivated struct {
	events.BaseEvent
	LenderID string `json:"lender_id"`
}

func NewPolicyDeactivated(policyID, lenderID string) PolicyDeactivated {
	return PolicyDeactivated{
		BaseEvent: events.NewBaseEvent("marketplace.policy.deactivated", policyID, "Policy"),
		LenderID:  lenderID,
	}
}
