package model

// MSMEProfile is the borrower-side view of a marketplace user, owned by the
// external identity system. The business fields beyond the scoring inputs
// feed the lender's applicant view.
type MSMEProfile struct {
	ID                   string
	Name                 string
	Role                 string
	Email                string
	Phone                string
	GSTIN                string
	MSMEType             string
	Sector               string
	Address              string
	BusinessVintageYears int
}

// RoleMSME is the borrower role; only users with this role may submit
// applications.
const RoleMSME = "msme"

// IsMSME reports whether the profile belongs to a borrower-side user.
func (p MSMEProfile) IsMSME() bool { return p.Role == RoleMSME }

// VintageMonths converts the business vintage to months.
func (p MSMEProfile) VintageMonths() int { return p.BusinessVintageYears * 12 }
