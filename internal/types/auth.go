//nolint:revive // types is a standard Go package name pattern
package types

// TokenRequest asks for a signed token for an ingestion or admin caller.
type TokenRequest struct {
	Subject string `json:"subject" validate:"required,uuid"`
	Hours   int    `json:"hours,omitempty" validate:"omitempty,min=1,max=8760"`
}

// RegisterProfileRequest registers the authenticated identity's profile.
type RegisterProfileRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Validate validates the TokenRequest using the validator.
func (r *TokenRequest) Validate() error {
	return ValidateStruct(r)
}

// Validate validates the RegisterProfileRequest using the validator.
func (r *RegisterProfileRequest) Validate() error {
	return ValidateStruct(r)
}
