package dto

// CreateResourceRequest represents the form fields of a resource upload.
// The file itself arrives as a multipart part named "resourceFile".
type CreateResourceRequest struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description" binding:"required"`
	Category    string `form:"category" binding:"required"`
}

// UpdateResourceRequest represents a partial resource metadata update
type UpdateResourceRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}
