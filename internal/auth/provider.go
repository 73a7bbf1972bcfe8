package auth

import (
	"context"
)

// DefaultProfileType is assigned to every profile produced by the login
// flow; the catalog has no role model beyond it.
const DefaultProfileType = "padrao"

// Profile is the identity produced by a successful login.
type Profile struct {
	Name        string
	Email       string
	PhotoURL    string
	ProfileType string
}

// Provider is the login capability. Login blocks until the user completes
// the external flow, cancels it, or ctx is cancelled. Only one
// implementation exists today; the interface keeps future providers
// pluggable.
type Provider interface {
	Login(ctx context.Context) (*Profile, error)
}

// ProfileFromClaims builds a profile from verified ID-token claims.
func ProfileFromClaims(claims map[string]interface{}) *Profile {
	str := func(key string) string {
		if v, ok := claims[key].(string); ok {
			return v
		}
		return ""
	}
	return &Profile{
		Name:        str("name"),
		Email:       str("email"),
		PhotoURL:    str("picture"),
		ProfileType: DefaultProfileType,
	}
}
