package auth

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims issued by the marketplace identity
// service. UserID is the marketplace custom id (not a database key).
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Marketplace role constants.
const (
	RoleMSME   = "msme"
	RoleLender = "lender"
	RoleAdmin  = "admin"
)

// HasRole checks whether the claims carry any of the given roles.
func (c Claims) HasRole(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}
