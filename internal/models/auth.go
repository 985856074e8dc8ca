package models

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleReader    Role = "reader"
)

// UserClaimKey is the context key under which authenticated claims are stored.
type UserClaimKey struct{}

// UserClaims are the validated bearer-token claims attached to each request
// by the Authenticate middleware. Token issuance lives in the identity
// service, not here.
type UserClaims struct {
	UserID int32  `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Aud    string `json:"aud_type"`
	Issuer string `json:"issuer"`
	jwt.RegisteredClaims
}

// CanReadCatalog reports whether the claims grant access to catalog
// statistics. Readers only see their own loan data, which this service does
// not serve.
func (c UserClaims) CanReadCatalog() bool {
	return c.Role == RoleAdmin || c.Role == RoleLibrarian
}
