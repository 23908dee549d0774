package dto

import (
	"time"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
)

// CollegeResponse represents the full college profile
type CollegeResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Country       string    `json:"country"`
	Description   string    `json:"description"`
	Logo          string    `json:"logo"`
	Website       *string   `json:"website,omitempty"`
	ContactNumber *string   `json:"contactNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UpdateCollegeRequest represents a partial profile update. Pointer fields
// distinguish "absent" (keep current value) from "present but empty"
// (overwrite with empty).
type UpdateCollegeRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Country       *string `json:"country,omitempty"`
	Description   *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Logo          *string `json:"logo,omitempty"`
	Website       *string `json:"website,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
}

// ToCollegeResponse maps a college entity to its API representation
func ToCollegeResponse(c *models.College) *CollegeResponse {
	if c == nil {
		return nil
	}
	return &CollegeResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Country:       c.Country,
		Description:   c.Description,
		Logo:          c.Logo,
		Website:       c.Website,
		ContactNumber: c.ContactNumber,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
