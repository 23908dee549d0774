package models

import (
	"time"
)

// College defines a tenant account based on the 'colleges' table. It
// combines login credentials with the public profile.
type College struct {
	ID            int64  `json:"id" db:"id" example:"1"`
	Name          string `json:"name" db:"name" example:"Alpha College"`
	Email         string `json:"email" db:"email" example:"admin@alpha.edu"`
	Password      string `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Address       string `json:"address" db:"address" example:"12 University Road"`
	City          string `json:"city" db:"city" example:"Springfield"`
	State         string `json:"state" db:"state" example:"Illinois"`
	Country       string `json:"country" db:"country" example:"USA"`
	Description   string `json:"description" db:"description"`
	Logo          string `json:"logo" db:"logo" example:"/uploads/default_college_logo.png"`
	Website       *string `json:"website,omitempty" db:"website"`
	ContactNumber *string `json:"contactNumber,omitempty" db:"contact_number"`

	// Reset-token fields hold only the sha256 digest of an outstanding
	// password reset token, never the raw token.
	ResetPasswordTokenHash *string    `json:"-" db:"reset_password_token_hash"`
	ResetPasswordExpiresAt *time.Time `json:"-" db:"reset_password_expires_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CollegeSummary is the reference expansion used wherever another entity
// points at a college.
type CollegeSummary struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Alpha College"`
	Logo string `json:"logo,omitempty" example:"/uploads/default_college_logo.png"`
}

// Summary returns the reference expansion for this college.
func (c *College) Summary() *CollegeSummary {
	return &CollegeSummary{
		ID:   c.ID,
		Name: c.Name,
		Logo: c.Logo,
	}
}
