package models

import (
	"time"
)

// ResourceCategory classifies a shared resource.
type ResourceCategory string

// Supported resource categories.
const (
	ResourceCategoryOfficialDocuments       ResourceCategory = "Official Documents"
	ResourceCategoryEventMaterials          ResourceCategory = "Event Materials"
	ResourceCategoryReportsAcademicContent  ResourceCategory = "Reports & Academic Content"
	ResourceCategoryAdministrativeDocuments ResourceCategory = "Administrative Documents"
)

// Valid reports whether the category is one of the supported values.
func (c ResourceCategory) Valid() bool {
	switch c {
	case ResourceCategoryOfficialDocuments, ResourceCategoryEventMaterials,
		ResourceCategoryReportsAcademicContent, ResourceCategoryAdministrativeDocuments:
		return true
	}
	return false
}

// Resource represents an uploaded file shared between colleges.
type Resource struct {
	ID               int64            `json:"id" db:"id"`
	Title            string           `json:"title" db:"title"`
	Description      string           `json:"description" db:"description"`
	Category         ResourceCategory `json:"category" db:"category"`
	File             string           `json:"file" db:"file"`
	OriginalFileName string           `json:"originalFileName" db:"original_file_name"`
	UploadedByID     int64            `json:"-" db:"uploaded_by_id"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`

	UploadedBy *CollegeSummary `json:"uploadedBy,omitempty"`
}
